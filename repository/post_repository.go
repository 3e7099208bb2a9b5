package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/utils"
)

// PostDraft carries the writable fields of a post. An empty Slug means
// "derive from the title"; an empty Excerpt means "derive from the content".
type PostDraft struct {
	Title      string
	Slug       string
	Content    string
	Excerpt    string
	CoverImage string
	Tags       []string
	Published  bool
	AuthorID   uint
}

// PostFilter narrows List results. Search is a case-insensitive substring
// match over title and content; Tag selects posts carrying that tag.
type PostFilter struct {
	Tag           string
	Search        string
	PublishedOnly bool
}

// PostRepository persists posts. Slug derivation, excerpt derivation and
// publishedAt stamping run here as explicit pipeline steps, so the handlers
// never touch those fields themselves.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a PostRepository bound to db.
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create validates the draft, derives slug and excerpt as needed, stamps
// publishedAt when the post is born published, and inserts it. The slug
// existence pre-check is an optimization; the unique index is the real guard.
func (r *PostRepository) Create(draft PostDraft) (*models.Post, error) {
	if err := validatePostDraft(&draft); err != nil {
		return nil, err
	}

	slug, err := resolveSlug(draft.Slug, draft.Title)
	if err != nil {
		return nil, err
	}

	var existing models.Post
	if err := r.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, conflictErr("slug")
	}

	post := models.Post{
		Title:      draft.Title,
		Slug:       slug,
		Content:    draft.Content,
		Excerpt:    draft.Excerpt,
		CoverImage: draft.CoverImage,
		Tags:       draft.Tags,
		Published:  draft.Published,
		AuthorID:   draft.AuthorID,
	}
	if post.Excerpt == "" {
		post.Excerpt = utils.DeriveExcerpt(post.Content)
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := r.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("slug")
		}
		return nil, err
	}

	if err := r.db.Preload("Author").First(&post, post.ID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces all writable fields of the post addressed by slug. A changed
// slug is re-checked for uniqueness against all other posts. publishedAt is
// stamped exactly once, on the false-to-true transition, and never cleared.
func (r *PostRepository) Update(slug string, draft PostDraft) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := validatePostDraft(&draft); err != nil {
		return nil, err
	}

	newSlug := post.Slug
	if draft.Slug != "" {
		resolved, err := resolveSlug(draft.Slug, draft.Title)
		if err != nil {
			return nil, err
		}
		newSlug = resolved
	}
	if newSlug != post.Slug {
		var existing models.Post
		if err := r.db.Where("slug = ? AND id <> ?", newSlug, post.ID).First(&existing).Error; err == nil {
			return nil, conflictErr("slug")
		}
	}

	if !post.Published && draft.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	post.Title = draft.Title
	post.Slug = newSlug
	post.Content = draft.Content
	post.CoverImage = draft.CoverImage
	post.Tags = draft.Tags
	post.Published = draft.Published
	post.Excerpt = draft.Excerpt
	if post.Excerpt == "" {
		post.Excerpt = utils.DeriveExcerpt(post.Content)
	}

	if err := r.db.Save(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("slug")
		}
		return nil, err
	}

	if err := r.db.Preload("Author").First(&post, post.ID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns the post addressed by slug with its author populated.
// With publishedOnly set, drafts are reported as not found.
func (r *PostRepository) FindBySlug(slug string, publishedOnly bool) (*models.Post, error) {
	query := r.db.Preload("Author").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var post models.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List returns a page of posts newest first (by publish time) with authors
// populated. total reflects the filter with no page window applied.
func (r *PostRepository) List(filter PostFilter, page, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Tag != "" {
		// Tags live in a JSON array column; a quoted LIKE matches whole values.
		query = query.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Preload("Author").
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Delete removes the post addressed by slug. Comments are left in place; they
// become unreachable because listing them re-checks the parent's existence.
func (r *PostRepository) Delete(slug string) error {
	res := r.db.Where("slug = ?", slug).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validatePostDraft(draft *PostDraft) error {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return validationErr("title", "title is required")
	}
	if draft.Content == "" {
		return validationErr("content", "content is required")
	}
	if draft.AuthorID == 0 {
		return validationErr("author", "author is required")
	}
	return nil
}

// resolveSlug picks the explicit slug when supplied, otherwise derives one
// from the title. Explicit slugs skip the transform but must be URL-safe.
func resolveSlug(explicit, title string) (string, error) {
	if explicit != "" {
		slug := strings.ToLower(strings.TrimSpace(explicit))
		if !utils.IsSlugSafe(slug) {
			return "", validationErr("slug", "slug may only contain lowercase letters, digits, hyphens and underscores")
		}
		return slug, nil
	}
	slug := utils.Slugify(title)
	if slug == "" {
		return "", validationErr("slug", "a slug could not be derived from the title")
	}
	return slug, nil
}
