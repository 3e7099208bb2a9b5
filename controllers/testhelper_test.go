package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkhub/inkhub/config"
	"github.com/inkhub/inkhub/middleware"
	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

// setupTestApp builds a gin engine over an in-memory SQLite database with the
// same route layout as production, minus access logging, CORS and rate
// limiting. RedisHost stays empty so caching and the token blacklist run on
// their in-process fallbacks.
func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.SetForTesting(config.AppConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authController := NewAuthController(userRepo)
	userController := NewUserController(userRepo)
	postController := NewPostController(postRepo)
	commentController := NewCommentController(commentRepo)

	r := gin.New()
	api := r.Group("/api/v1")

	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", middleware.AuthRequired(), authController.Logout)
	api.GET("/auth/me", middleware.AuthRequired(), authController.Me)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:slug", postController.GetPost)
	api.GET("/comments", commentController.ListComments)
	api.POST("/users", userController.Register)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:slug", postController.UpdatePost)
	protected.DELETE("/posts/:slug", postController.DeletePost)
	protected.POST("/comments", commentController.CreateComment)
	protected.DELETE("/comments/:id", commentController.DeleteComment)
	protected.GET("/users", userController.ListUsers)

	return r, db
}

// performJSON issues a request against the engine and records the response.
// An empty token sends the request anonymously.
func performJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// registerUser creates an account through the public endpoint.
func registerUser(t *testing.T, r *gin.Engine, name, email, password string) models.User {
	t.Helper()
	w := performJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, w.Code, w.Body.String())
	}
	var user models.User
	decodeBody(t, w, &user)
	return user
}

// tokenFor mints a JWT directly, bypassing the login endpoint.
func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// loginUser authenticates through the endpoint and returns the issued token.
func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Token
}

// seedAdmin inserts an admin account directly into the database.
func seedAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("admin-secret-pw")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin := models.User{
		Name:         "Site Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return &admin
}
