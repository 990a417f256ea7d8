package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/service"
)

// ContextUserKey is the Gin context key holding the authenticated user.
const ContextUserKey = "auth_user"

// RequireAuth returns a middleware that resolves the bearer session token
// and aborts with 401 when it is missing or invalid.
// Parameters:
//   - userService: service used to resolve tokens to users.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireAuth(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization required",
			})
			return
		}

		user, err := userService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			return
		}

		c.Set(ContextUserKey, user)

		// Enrich the request context so downstream logs carry the user
		ctx := logger.WithField(c.Request.Context(), logger.FieldUserID, user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but never aborts.
// Anonymous requests continue without a user in context.
func OptionalAuth(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if user, err := userService.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the Gin context.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - *domain.User: authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *domain.User {
	if v, exists := c.Get(ContextUserKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID returns the authenticated user's ID or "" when anonymous.
func CurrentUserID(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
