package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the display name inside Gin context.
	ContextUserNameKey = "user_name"
	// ContextRoleKey stores the role carried in the token.
	ContextRoleKey = "user_role"
	// ContextTokenKey stores the raw bearer token for logout.
	ContextTokenKey = "token"
)

// AuthRequired ensures the request carries a valid, non-revoked JWT and
// stores the actor's identity in the context for the handlers.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, "empty bearer token")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Set(ContextRoleKey, claims.Role)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// Actor reconstructs the authenticated principal from the context. The second
// return is false for anonymous requests.
func Actor(ctx *gin.Context) (*models.User, bool) {
	idVal, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return nil, false
	}
	id, ok := idVal.(uint)
	if !ok {
		return nil, false
	}

	actor := &models.User{ID: id, Role: models.RoleAuthor}
	if nameVal, ok := ctx.Get(ContextUserNameKey); ok {
		actor.Name, _ = nameVal.(string)
	}
	if roleVal, ok := ctx.Get(ContextRoleKey); ok {
		if role, ok := roleVal.(models.Role); ok && role.Valid() {
			actor.Role = role
		}
	}
	return actor, true
}
