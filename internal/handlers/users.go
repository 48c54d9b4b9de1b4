package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffeeshop/internal/metrics"
	"coffeeshop/internal/middleware"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func GetUsers(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users"
		defer handlePanic(c, route)

		list, err := users.ListUsers(c.Request.Context())
		if err != nil {
			respondStoreError(c, route, "Users could not be fetched", err, http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// CreateUser registers an account. The response never carries the password
// hash.
func CreateUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users"
		defer handlePanic(c, route)

		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		user, err := users.CreateUser(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondStoreError(c, route, "Error creating user", err, http.StatusInternalServerError)
			return
		}

		metrics.UsersCreatedTotal.Inc()
		zap.L().Info("user registered", zap.String("username", user.Username))
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

// GetMe returns the user named by the bearer token. It must run behind
// middleware.UserAuth.
func GetMe(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/me"
		defer handlePanic(c, route)

		userID := c.GetString(middleware.UserIDKey)
		if userID == "" {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			respondStoreError(c, route, "User not found", err, http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
