package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffeeshop/internal/auth"
)

const (
	UserIDKey   = "userId"
	UsernameKey = "username"
)

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// UserAuth validates bearer tokens and injects the userId into the context.
func UserAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			zap.L().Debug("missing token", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			zap.L().Debug("invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			zap.L().Info("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "error": err.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
