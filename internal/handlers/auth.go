package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"coffeeshop/internal/metrics"
	"coffeeshop/internal/store"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := store.FieldName(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
}

// Login checks the credentials and returns a signed token. Unknown users and
// wrong passwords get the same 400 response.
func Login(users UserStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			respondValidationError(c, err)
			return
		}

		user, err := users.FindUserByCredentials(c.Request.Context(), req.Username, req.Password)
		if store.IsNotFound(err) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			zap.L().Info("login rejected", zap.String("username", req.Username))
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		if err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			respondStoreError(c, route, "An error occurred during login", err, http.StatusInternalServerError)
			return
		}

		token, err := tokens.Issue(user.ID.Hex(), user.Username)
		if err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			zap.L().Error("token generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "token generation failed"})
			return
		}

		metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
		zap.L().Info("login succeeded", zap.String("username", user.Username))
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
		})
	}
}
