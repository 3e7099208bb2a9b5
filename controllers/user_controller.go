package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/middleware"
	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

// UserController serves registration and the admin-only user listing.
type UserController struct {
	users *repository.UserRepository
}

// NewUserController creates a UserController backed by the given repository.
func NewUserController(users *repository.UserRepository) *UserController {
	return &UserController{users: users}
}

// Register handles open self-registration. The role is always author no
// matter what the client sends, so signup can never escalate privileges.
func (u *UserController) Register(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := u.users.Create(repository.UserDraft{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Role:     models.RoleAuthor,
	})
	if err != nil {
		respondRepoError(ctx, err, "user not found", "failed to create user")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// ListUsers returns a page of users newest first, searchable by name or
// email. Admin only; password hashes are never serialized.
func (u *UserController) ListUsers(ctx *gin.Context) {
	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	if actor.Role != models.RoleAdmin {
		utils.Error(ctx, http.StatusForbidden, "admin access required")
		return
	}

	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	search := strings.TrimSpace(ctx.Query("search"))

	users, total, err := u.users.List(search, page, limit)
	if err != nil {
		respondRepoError(ctx, err, "not found", "failed to list users")
		return
	}
	ctx.JSON(http.StatusOK, utils.Paginated(users, total, page, limit))
}
