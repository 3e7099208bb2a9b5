package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/middleware"
	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

const (
	postListCachePrefix   = "cache:posts:list:"
	postDetailCachePrefix = "cache:post:detail:"
)

// PostController serves the post CRUD endpoints.
type PostController struct {
	posts *repository.PostRepository
}

// NewPostController creates a PostController backed by the given repository.
func NewPostController(posts *repository.PostRepository) *PostController {
	return &PostController{posts: posts}
}

type postRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// ListPosts returns a page of published posts, filterable by tag and by a
// free-text substring over title and content.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))
	tag := strings.TrimSpace(ctx.Query("tag"))
	search := strings.TrimSpace(ctx.Query("search"))

	// Cache only searchless lists to avoid cache key explosion.
	cacheKey := fmt.Sprintf("%stag=%s:page=%d:limit=%d", postListCachePrefix, tag, page, limit)
	if search == "" {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	filter := repository.PostFilter{Tag: tag, Search: search, PublishedOnly: true}
	posts, total, err := p.posts.List(filter, page, limit)
	if err != nil {
		respondRepoError(ctx, err, "not found", "failed to list posts")
		return
	}

	payload := utils.Paginated(posts, total, page, limit)
	if search == "" {
		utils.CacheSetJSON(cacheKey, payload, time.Hour)
	}
	ctx.JSON(http.StatusOK, payload)
}

// GetPost returns a single published post by slug with its author populated.
func (p *PostController) GetPost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	if b, ok := utils.CacheGetBytes(postDetailCachePrefix + slug); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.FindBySlug(slug, true)
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to load post")
		return
	}

	utils.CacheSetJSON(postDetailCachePrefix+slug, post, time.Hour)
	ctx.JSON(http.StatusOK, post)
}

// CreatePost creates a post owned by the caller. The slug is derived from
// the title unless explicitly supplied.
func (p *PostController) CreatePost(ctx *gin.Context) {
	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	post, err := p.posts.Create(repository.PostDraft{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
		AuthorID:   actor.ID,
	})
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to create post")
		return
	}

	utils.InvalidateByPrefix(postListCachePrefix)
	ctx.JSON(http.StatusCreated, post)
}

// UpdatePost performs a full update of the caller's post. A changed slug is
// re-checked for uniqueness before committing.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	post, err := p.posts.FindBySlug(slug, false)
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to load post")
		return
	}
	if !models.CanModify(actor, post.AuthorID) {
		utils.Error(ctx, http.StatusForbidden, "you do not have permission to edit this post")
		return
	}

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := p.posts.Update(slug, repository.PostDraft{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
		AuthorID:   post.AuthorID,
	})
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to update post")
		return
	}

	utils.InvalidateByPrefix(postListCachePrefix)
	utils.InvalidateByPrefix(postDetailCachePrefix + slug)
	if updated.Slug != slug {
		utils.InvalidateByPrefix(postDetailCachePrefix + updated.Slug)
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeletePost removes the caller's post. Comments are not cascaded.
func (p *PostController) DeletePost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	actor, ok := middleware.Actor(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	post, err := p.posts.FindBySlug(slug, false)
	if err != nil {
		respondRepoError(ctx, err, "post not found", "failed to load post")
		return
	}
	if !models.CanModify(actor, post.AuthorID) {
		utils.Error(ctx, http.StatusForbidden, "you do not have permission to delete this post")
		return
	}

	if err := p.posts.Delete(slug); err != nil {
		respondRepoError(ctx, err, "post not found", "failed to delete post")
		return
	}

	utils.InvalidateByPrefix(postListCachePrefix)
	utils.InvalidateByPrefix(postDetailCachePrefix + slug)
	ctx.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}
