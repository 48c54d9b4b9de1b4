package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/config"
	"coffeeshop/internal/database"
	"coffeeshop/internal/logger"
	"coffeeshop/internal/server"
	"coffeeshop/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "coffeeshop",
		Usage: "coffee shop ordering API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (overrides PORT)"},
			&cli.StringFlag{Name: "mongo-uri", Usage: "MongoDB connection string (overrides MONGO_URI)"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "indexes",
				Usage:  "create the MongoDB indexes and exit",
				Action: indexes,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Printf("coffeeshop: %v", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	if uri := c.String("mongo-uri"); uri != "" {
		cfg.MongoURI = uri
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database(cfg.DBName)
	zl.Info("MongoDB connected", zap.String("db", db.Name()))

	if err := database.EnsureIndexes(db); err != nil {
		zl.Warn("index warning", zap.Error(err))
	}

	st := store.New(db, store.Options{Timeout: cfg.RequestTimeout})
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			zl.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Deps{
		Users:      st,
		Orders:     st,
		Health:     st,
		Tokens:     tokens,
		Auth:       tokens,
		Logger:     zl,
		CORSOrigin: cfg.CORSOrigin,
	})

	return server.Run(ctx, cfg.Addr(), router, cfg.ShutdownTimeout)
}

func indexes(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	client, err := database.Connect(c.Context, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return database.EnsureIndexes(client.Database(cfg.DBName))
}
