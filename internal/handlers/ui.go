package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const welcomeText = "Welcome to Coffee Shop Payment Processing API"

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, welcomeText)
	}
}

// Health reports whether the document store answers a ping.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			zap.L().Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
