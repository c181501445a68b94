package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"shoppy-store/internal/config"
	"shoppy-store/internal/database"
	custommiddleware "shoppy-store/internal/middleware"
	"shoppy-store/internal/repository"
	"shoppy-store/internal/service"
	"shoppy-store/internal/shopify"
	"shoppy-store/internal/transport"
	"shoppy-store/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix namespaces every Redis key the storefront writes
const keyPrefix = "shoppy"

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	db      *sql.DB
	redis   *redis.Client
	shopify *shopify.Client
}

// NewServer wires the storefront. db and redisClient are optional: without a
// database the cart journal is disabled, without Redis catalog caching and
// rate limiting are off and revisions are kept in memory.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) (*Server, error) {
	shopifyClient := shopify.NewClient(cfg.Shopify, logger)

	// Initialize repositories
	var (
		catalogCache = repository.NewNoopCatalogCache()
		revisions    = repository.NewMemoryRevisionCounter()
		events       = repository.NewNoopCartEventRepository()
	)
	if redisClient != nil {
		catalogCache = repository.NewRedisCatalogCache(redisClient, keyPrefix)
		revisions = repository.NewRedisRevisionCounter(redisClient, keyPrefix)
	}
	if db != nil {
		events = repository.NewCartEventRepository(db)
	}

	// Initialize services
	catalogService := service.NewCatalogService(shopifyClient, catalogCache, cfg.Cache.TTL, logger)
	cartService := service.NewCartService(shopifyClient, revisions, events, logger)

	// Initialize handlers
	secureCookies := cfg.IsProduction()
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, secureCookies, logger)
	pageHandler, err := web.NewHandler(catalogService, cartService, secureCookies, logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(custommiddleware.DefaultMiddlewareStack(logger)...)

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{"status": "ok"}
		if db != nil {
			health["database"] = database.Health(r.Context(), db)
			if version, err := database.SchemaVersion(db); err == nil {
				health["schema_version"] = version
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()).Err(); err != nil {
				health["redis"] = "down"
			} else {
				health["redis"] = "up"
			}
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, health)
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, !cfg.IsProduction()))
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         keyPrefix,
			}, logger))
		}

		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
	})

	pageHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.Shopify.Timeout + 10*time.Second,
		},
		config:  cfg,
		logger:  logger,
		db:      db,
		redis:   redisClient,
		shopify: shopifyClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if err := s.shopify.Close(); err != nil {
		s.logger.Error("Failed to close storefront client", zap.Error(err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
