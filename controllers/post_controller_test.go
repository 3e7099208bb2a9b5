package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/repository"
)

func TestCreatePostDerivesSlugAndExcerpt(t *testing.T) {
	r, _ := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	token := tokenFor(t, &author)

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title":     "Hello, World!",
		"content":   "<p>First paragraph of the post body.</p>",
		"published": true,
		"tags":      []string{"go", "intro"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	decodeBody(t, w, &post)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "First paragraph of the post body.", post.Excerpt)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.NotNil(t, post.PublishedAt)
	assert.Equal(t, author.ID, post.Author.ID)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	r, _ := setupTestApp(t)

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", "", gin.H{
		"title":   "Anonymous",
		"content": "body",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostSlugConflict(t *testing.T) {
	r, _ := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	token := tokenFor(t, &author)

	first := performJSON(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title": "Same Title", "content": "a", "published": true,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title": "Same Title", "content": "b", "published": true,
	})
	assert.Equal(t, http.StatusConflict, second.Code, second.Body.String())
}

func TestGetPostPublishedOnly(t *testing.T) {
	r, _ := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	token := tokenFor(t, &author)

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title": "Stealth Draft", "content": "not ready", "published": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A draft is invisible on the public read path.
	w = performJSON(t, r, http.MethodGet, "/api/v1/posts/stealth-draft", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = performJSON(t, r, http.MethodGet, "/api/v1/posts/never-existed", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostOwnershipLifecycle(t *testing.T) {
	r, db := setupTestApp(t)

	alice := registerUser(t, r, "Alice", "alice@example.com", "correct-horse")
	bob := registerUser(t, r, "Bob", "bob@example.com", "correct-horse")
	aliceToken := tokenFor(t, &alice)
	bobToken := tokenFor(t, &bob)

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", aliceToken, gin.H{
		"title": "Hello, World!", "content": "original body", "published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Bob cannot edit Alice's post.
	w = performJSON(t, r, http.MethodPut, "/api/v1/posts/hello-world", bobToken, gin.H{
		"title": "Hijacked", "content": "changed", "published": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	var stored models.Post
	require.NoError(t, db.Where("slug = ?", "hello-world").First(&stored).Error)
	assert.Equal(t, "Hello, World!", stored.Title)

	// Nor delete it.
	w = performJSON(t, r, http.MethodDelete, "/api/v1/posts/hello-world", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice can.
	w = performJSON(t, r, http.MethodDelete, "/api/v1/posts/hello-world", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performJSON(t, r, http.MethodGet, "/api/v1/posts/hello-world", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCanModifyAnyPost(t *testing.T) {
	r, db := setupTestApp(t)

	alice := registerUser(t, r, "Alice", "alice@example.com", "correct-horse")
	admin := seedAdmin(t, db, "root@example.com")

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", tokenFor(t, &alice), gin.H{
		"title": "Needs Moderation", "content": "spam", "published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodDelete, "/api/v1/posts/needs-moderation", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUpdatePostStampsPublishedAtOnce(t *testing.T) {
	r, _ := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	token := tokenFor(t, &author)

	w := performJSON(t, r, http.MethodPost, "/api/v1/posts", token, gin.H{
		"title": "Slow Burn", "content": "draft body", "published": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	decodeBody(t, w, &created)
	require.Nil(t, created.PublishedAt)

	w = performJSON(t, r, http.MethodPut, "/api/v1/posts/slow-burn", token, gin.H{
		"title": "Slow Burn", "content": "final body", "published": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var published models.Post
	decodeBody(t, w, &published)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	w = performJSON(t, r, http.MethodPut, "/api/v1/posts/slow-burn", token, gin.H{
		"title": "Slow Burn", "content": "touched again", "published": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var touched models.Post
	decodeBody(t, w, &touched)
	require.NotNil(t, touched.PublishedAt)
	assert.True(t, touched.PublishedAt.Equal(firstStamp), "republish must not move publishedAt")
}

func TestListPostsPagination(t *testing.T) {
	r, db := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	posts := repository.NewPostRepository(db)
	for i := 1; i <= 25; i++ {
		_, err := posts.Create(repository.PostDraft{
			Title:     fmt.Sprintf("Post number %d", i),
			Content:   "body",
			Published: true,
			AuthorID:  author.ID,
		})
		require.NoError(t, err)
	}

	w := performJSON(t, r, http.MethodGet, "/api/v1/posts?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items      []models.Post `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Pages int   `json:"pages"`
		} `json:"pagination"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Items, 10)
	assert.EqualValues(t, 25, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 3, resp.Pagination.Pages)
}

func TestListPostsFilters(t *testing.T) {
	r, db := setupTestApp(t)

	author := registerUser(t, r, "Ada", "ada@example.com", "correct-horse")
	posts := repository.NewPostRepository(db)

	mk := func(title, content string, tags []string, published bool) {
		_, err := posts.Create(repository.PostDraft{
			Title: title, Content: content, Tags: tags,
			Published: published, AuthorID: author.ID,
		})
		require.NoError(t, err)
	}
	mk("Go Concurrency", "channels and goroutines", []string{"go"}, true)
	mk("Gardening Notes", "tomatoes need sun", []string{"garden"}, true)
	mk("Unpublished Go Draft", "goroutine leaks", []string{"go"}, false)

	w := performJSON(t, r, http.MethodGet, "/api/v1/posts?tag=go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byTag struct {
		Items []models.Post `json:"items"`
	}
	decodeBody(t, w, &byTag)
	require.Len(t, byTag.Items, 1) // drafts stay hidden
	assert.Equal(t, "Go Concurrency", byTag.Items[0].Title)

	w = performJSON(t, r, http.MethodGet, "/api/v1/posts?search=tomatoes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bySearch struct {
		Items []models.Post `json:"items"`
	}
	decodeBody(t, w, &bySearch)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "Gardening Notes", bySearch.Items[0].Title)
}
