package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastemap/backend/config"
	"github.com/tastemap/backend/internal/api"
	"github.com/tastemap/backend/internal/middleware"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
	log    *logger.Logger
}

// NewServer wires services and handlers onto a gin engine. A nil redis
// client keeps the classifier cache in process memory; an empty provider
// key runs the classifier in fallback-only mode.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logger.Logger) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	var cache service.ResponseCache
	if redisClient != nil {
		cache = service.NewRedisCache(redisClient, cfg.ClassifierCacheTTL)
	} else {
		log.Warn("redis unavailable, classifier cache falls back to process memory")
		cache = service.NewMemoryCache(cfg.ClassifierCacheTTL, 1024)
	}

	var provider service.ClassificationProvider
	if cfg.ProviderAPIKey != "" {
		provider = service.NewHTTPProvider(cfg, log)
	} else {
		log.Warn("no provider API key configured, classification runs on fallbacks only")
	}

	// Initialize services
	catalogService := service.NewCatalogService(db)
	contextService := service.NewContextService(db)
	classifier := service.NewClassifier(provider, cache, log)
	tasteService := service.NewTasteService(contextService, catalogService, classifier, log)
	summaryService := service.NewSummaryService(contextService)
	recommendationService := service.NewRecommendationService(contextService, catalogService, classifier, log)

	// Initialize handlers
	contextHandler := api.NewContextHandler(contextService, tasteService, summaryService)
	recommendationHandler := api.NewRecommendationHandler(recommendationService)
	healthHandler := api.NewHealthHandler(db, redisClient)

	// Register routes
	healthHandler.RegisterRoutes(router)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(cfg.APIKey))
	{
		contextHandler.RegisterRoutes(v1)
		recommendationHandler.RegisterRoutes(v1)
	}

	return &Server{
		router: router,
		cfg:    cfg,
		log:    log,
	}
}

// Router exposes the underlying gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	s.log.Info("starting server", "port", s.cfg.ServerPort)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
