package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coffeeshop/internal/handlers"
	"coffeeshop/internal/metrics"
	"coffeeshop/internal/middleware"
)

// Deps are the collaborators the routes call into.
type Deps struct {
	Users      handlers.UserStore
	Orders     handlers.OrderStore
	Health     handlers.Pinger
	Tokens     handlers.TokenIssuer
	Auth       middleware.TokenParser
	Logger     *zap.Logger
	CORSOrigin string
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		metrics.Middleware(),
	)
	if d.CORSOrigin != "" {
		r.Use(middleware.CORS(d.CORSOrigin))
	}

	r.GET("/", handlers.Home())
	r.GET("/healthz", handlers.Health(d.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/login", handlers.Login(d.Users, d.Tokens))

	r.GET("/users", handlers.GetUsers(d.Users))
	r.POST("/users", handlers.CreateUser(d.Users))
	r.GET("/users/me", middleware.UserAuth(d.Auth), handlers.GetMe(d.Users))

	r.GET("/orders", handlers.GetOrders(d.Orders))
	r.POST("/orders", handlers.CreateOrder(d.Orders))
	r.PUT("/orders/:id", handlers.UpdateOrder(d.Orders))
	r.DELETE("/orders/:id", handlers.DeleteOrder(d.Orders))

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		zap.L().Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
