package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"courtdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ctxAdminUserKey = "admin_user"

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		username, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminUserKey, username)
		c.Next()
	}
}

func GetAdminUser(c *gin.Context) string {
	if v, exists := c.Get(ctxAdminUserKey); exists {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}
