package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkhub/inkhub/models"
)

// CommentDraft carries the writable fields of a comment.
type CommentDraft struct {
	Content  string
	PostID   uint
	AuthorID uint
}

// CommentRepository persists comments. The parent post must exist at creation
// time; listing re-checks it so comments orphaned by a post deletion stay
// unreachable.
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a CommentRepository bound to db.
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create validates the draft, confirms the parent post exists, and inserts
// the comment with its author populated.
func (r *CommentRepository) Create(draft CommentDraft) (*models.Comment, error) {
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Content == "" {
		return nil, validationErr("content", "content is required")
	}
	if draft.PostID == 0 {
		return nil, validationErr("postId", "postId is required")
	}
	if draft.AuthorID == 0 {
		return nil, validationErr("author", "author is required")
	}

	var post models.Post
	if err := r.db.First(&post, draft.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		Content:  draft.Content,
		PostID:   draft.PostID,
		AuthorID: draft.AuthorID,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := r.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns all comments of a post newest first with authors
// populated. A missing parent post is reported as not found.
func (r *CommentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	var post models.Post
	if err := r.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByID returns the comment with the given id.
func (r *CommentRepository) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment with the given id.
func (r *CommentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
