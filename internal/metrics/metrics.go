package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersUpdatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffeeshop_orders_updated_total",
		Help: "Total number of successful order updates, by kind.",
	},
		[]string{"kind"},
	)

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_orders_deleted_total",
		Help: "Total number of orders successfully deleted.",
	})

	UsersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_users_created_total",
		Help: "Total number of registered users.",
	})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffeeshop_login_attempts_total",
		Help: "Login attempts by result.",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffeeshop_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coffeeshop_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "status"},
	)
)

// Middleware records the latency of every request under its route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
