package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/xyppyx/DoNext/backend/internal/services"
)

// principalKey is the context key the auth middleware stores the
// authenticated user id under.
const principalKey = "user_id"

// Auth validates the bearer token and stores the principal's user id in the
// request context. Handlers behind it can assume PrincipalID succeeds.
func Auth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		userID, err := auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, userID)
		c.Next()
	}
}

// PrincipalID returns the authenticated user id set by Auth.
func PrincipalID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
