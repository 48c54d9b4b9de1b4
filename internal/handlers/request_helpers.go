package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffeeshop/internal/metrics"
	"coffeeshop/internal/models"
	"coffeeshop/internal/store"
)

type UserStore interface {
	FindUserByCredentials(ctx context.Context, username, password string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, username, password string) (models.User, error)
}

type OrderStore interface {
	ListOrders(ctx context.Context, page store.Page) ([]models.Order, error)
	CreateOrder(ctx context.Context, in store.NewOrder) (models.Order, error)
	ReplaceOrder(ctx context.Context, id string, fields models.OrderFields) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	zap.L().Info("returning error", zap.String("route", route), zap.Int("status", status), zap.String("message", message))
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// respondStoreError maps a store error onto a status code. Validation errors
// are 400 (409 for duplicates) and missing records 404; anything else gets
// the route's fallback status.
func respondStoreError(c *gin.Context, route, message string, err error, fallback int) {
	status := fallback
	switch {
	case store.IsDuplicate(err):
		status = http.StatusConflict
	case store.IsValidation(err):
		status = http.StatusBadRequest
	case store.IsNotFound(err):
		status = http.StatusNotFound
	}

	fields := []zap.Field{
		zap.String("route", route),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError || store.IsStore(err) {
		metrics.OperationErrorsTotal.WithLabelValues(route).Inc()
		zap.L().Error("store operation failed", fields...)
	} else {
		zap.L().Info("request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": message, "error": err.Error()})
}
