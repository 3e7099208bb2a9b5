package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/middleware"
	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

// CommentController serves the comment endpoints.
type CommentController struct {
	comments *repository.CommentRepository
}

// NewCommentController creates a CommentController backed by the given repository.
func NewCommentController(comments *repository.CommentRepository) *CommentController {
	return &CommentController{comments: comments}
}

// ListComments returns all comments of a post newest first. Reading is public
// once the parent post is confirmed to exist.
func (c *CommentController) ListComments(ctx *gin.Context) {
	postIDStr := ctx.Query("postId")
	if postIDStr == "" {
		utils.Error(ctx, http.StatusBadRequest, "postId is required")
		return
	}
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid postId")
		return
	}

	comments, err := c.comments.ListByPost(uint(postID))
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to list comments")
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// CreateComment attaches a comment authored by the caller to an existing post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Content string `json:"content"`
		PostID  uint   `json:"postId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment, err := c.comments.Create(repository.CommentDraft{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: actor.ID,
	})
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to create comment")
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment; only its author or an admin may do so.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid comment id")
		return
	}

	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	comment, err := c.comments.FindByID(uint(id))
	if err != nil {
		respondRepoError(ctx, err, "comment not found", "failed to load comment")
		return
	}
	if !models.CanModify(actor, comment.AuthorID) {
		utils.Error(ctx, http.StatusForbidden, "you can only delete your own comments")
		return
	}

	if err := c.comments.Delete(comment.ID); err != nil {
		respondRepoError(ctx, err, "comment not found", "failed to delete comment")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
