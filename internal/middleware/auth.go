package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chronoflow/chronoflow/internal/auth"
	"github.com/chronoflow/chronoflow/internal/models"
)

// userKey is the gin context key for the authenticated user.
const userKey = "chronoflow.user"

// CurrentUser extracts the authenticated user from the request context.
// Returns nil if the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.Value(userKey).(*models.User)
	return user
}

// RequireAuth returns middleware that validates the Bearer token and loads
// the corresponding user record. The store is the source of truth: a valid
// token for a deleted user is rejected. On success the user is stored in the
// request context for handlers to read via CurrentUser.
func RequireAuth(jwtManager *auth.JWTManager, users auth.UserStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		// Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c)
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "Authentication required",
	})
}
