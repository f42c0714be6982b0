package delivery

import (
	"net/http"
	"strings"

	authdomain "edupath-backend/internal/auth/domain"
	"edupath-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole rejects requests from users outside the allowed roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(c *gin.Context) *authdomain.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*authdomain.User)
	if !ok {
		return nil
	}
	return user
}
