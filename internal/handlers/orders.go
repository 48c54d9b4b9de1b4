package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coffeeshop/internal/metrics"
	"coffeeshop/internal/models"
	"coffeeshop/internal/store"
)

type createOrderRequest struct {
	Items         []string `json:"items"`
	CustomerName  string   `json:"customerName"`
	Price         float64  `json:"price"`
	OrderStatus   string   `json:"orderStatus"`
	PaymentStatus string   `json:"paymentStatus"`
}

// complete mirrors the truthiness check clients expect: every field must be
// present and non-zero.
func (r createOrderRequest) complete() bool {
	return len(r.Items) > 0 &&
		strings.TrimSpace(r.CustomerName) != "" &&
		r.Price != 0 &&
		strings.TrimSpace(r.OrderStatus) != "" &&
		strings.TrimSpace(r.PaymentStatus) != ""
}

func GetOrders(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		page, err := parsePage(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		list, err := orders.ListOrders(c.Request.Context(), page)
		if err != nil {
			respondStoreError(c, route, "Orders could not be fetched", err, http.StatusInternalServerError)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func CreateOrder(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error adding order", "error": err.Error()})
			return
		}
		if !req.complete() {
			respondWithError(c, http.StatusBadRequest, route, "All fields are required")
			return
		}

		order, err := orders.CreateOrder(c.Request.Context(), store.NewOrder{
			Items:         req.Items,
			CustomerName:  req.CustomerName,
			Price:         req.Price,
			OrderStatus:   req.OrderStatus,
			PaymentStatus: req.PaymentStatus,
		})
		if err != nil {
			respondStoreError(c, route, "Error adding order", err, http.StatusBadRequest)
			return
		}

		metrics.OrdersCreatedTotal.Inc()
		zap.L().Info("order created", zap.String("orderId", order.ID.Hex()), zap.String("customer", order.CustomerName))
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order added successfully",
			"order":   order,
		})
	}
}

// UpdateOrder serves PUT /orders/:id. A body carrying only orderStatus (or
// nothing) is a status update and refreshes updatedAt; any other body is a
// replacement of the fields it carries.
func UpdateOrder(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id"
		defer handlePanic(c, route)

		id := c.Param("id")

		var fields models.OrderFields
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update order.", "error": err.Error()})
			return
		}

		if fields.Empty() || fields.StatusOnly() {
			updateOrderStatus(c, orders, id, fields.OrderStatus)
			return
		}

		order, err := orders.ReplaceOrder(c.Request.Context(), id, fields)
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found, unable to update."})
			return
		}
		if err != nil {
			respondStoreError(c, route, "Failed to update order.", err, http.StatusBadRequest)
			return
		}

		metrics.OrdersUpdatedTotal.WithLabelValues("replace").Inc()
		zap.L().Info("order replaced", zap.String("orderId", id))
		c.JSON(http.StatusOK, gin.H{
			"message": "Order updated successfully!",
			"order":   order,
		})
	}
}

func updateOrderStatus(c *gin.Context, orders OrderStore, id string, status *string) {
	const route = "PUT /orders/:id status"

	if status == nil || strings.TrimSpace(*status) == "" {
		respondWithError(c, http.StatusBadRequest, route, "OrderStatus is required.")
		return
	}

	order, err := orders.UpdateOrderStatus(c.Request.Context(), id, *status)
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found."})
		return
	}
	if err != nil {
		respondStoreError(c, route, "Internal server error.", err, http.StatusInternalServerError)
		return
	}

	metrics.OrdersUpdatedTotal.WithLabelValues("status").Inc()
	zap.L().Info("order status updated", zap.String("orderId", id), zap.String("status", order.OrderStatus))
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully!",
		"order":   order,
	})
}

func DeleteOrder(orders OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer handlePanic(c, route)

		err := orders.DeleteOrder(c.Request.Context(), c.Param("id"))
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if err != nil {
			respondStoreError(c, route, "Error deleting order", err, http.StatusInternalServerError)
			return
		}

		metrics.OrdersDeletedTotal.Inc()
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
