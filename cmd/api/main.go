package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shoppy-store/internal/config"
	"shoppy-store/internal/database"
	"shoppy-store/internal/logger"
	"shoppy-store/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight storefront calls get 30 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// openJournal connects the cart event journal and applies its migrations
func openJournal(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) *sql.DB {
	if !cfg.Enabled() {
		log.Info("DB_HOST not set, cart event journal disabled")
		return nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database health check", zap.Any("health", database.Health(ctx, db)))

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	return db
}

// openRedis connects Redis when enabled. A failed connection degrades to
// running without cache and rate limiting.
func openRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client, err := database.OpenRedis(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		return nil
	}
	log.Info("Connected to redis", zap.String("host", cfg.Host), zap.String("port", cfg.Port))
	return client
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting shoppy storefront",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Shopify.StoreDomain),
	)
	if cfg.Shopify.StoreDomain == "" || cfg.Shopify.StorefrontToken == "" {
		log.Warn("Storefront credentials are empty, platform calls will fail")
	}

	ctx := context.Background()
	db := openJournal(ctx, cfg.Database, log)
	redisClient := openRedis(ctx, cfg.Redis, log)

	// Create server
	srv, err := server.NewServer(cfg, log, db, redisClient)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
