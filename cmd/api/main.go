package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tastemap/backend/config"
	"github.com/tastemap/backend/internal/database"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(os.Getenv("GIN_MODE"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		appLogger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("failed to run migrations", "error", err)
	}

	// Redis is an optimization, not a dependency: the server degrades to
	// an in-process classifier cache when it is unreachable.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		appLogger.Warn("failed to connect to redis", "error", err)
		redisClient = nil
	}

	srv := server.NewServer(cfg, db, redisClient, appLogger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLogger.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		appLogger.Info("received signal, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("server shutdown error", "error", err)
	}
	appLogger.Info("server stopped")
}
