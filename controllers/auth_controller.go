package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/config"
	"github.com/inkhub/inkhub/middleware"
	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

// AuthController handles credential verification and session issuance.
type AuthController struct {
	users *repository.UserRepository
}

// NewAuthController creates an AuthController backed by the user repository.
func NewAuthController(users *repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

// Login verifies email and password and issues a JWT. Wrong email and wrong
// password answer identically so the endpoint leaks nothing about accounts.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.Error(ctx, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondRepoError(ctx, err, "user not found", "failed to authenticate")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "invalid email or password")
		return
	}

	ttl := time.Duration(config.Get().TokenTTLHours) * time.Hour
	token, err := utils.GenerateToken(user, ttl)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorw("failed to sign token", "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to issue token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout revokes the caller's token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	tokenVal, ok := ctx.Get(middleware.ContextTokenKey)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	tokenString, _ := tokenVal.(string)

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "invalid token")
		return
	}

	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(tokenString, expiresAt)
	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's own record.
func (a *AuthController) Me(ctx *gin.Context) {
	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := a.users.FindByID(actor.ID)
	if err != nil {
		respondRepoError(ctx, err, "user not found", "failed to load user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}
