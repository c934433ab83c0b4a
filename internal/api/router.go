// Package api provides the HTTP API for the weather-tourism service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/satyamjaihind1/weather-tourism/internal/api/handler"
	"github.com/satyamjaihind1/weather-tourism/internal/api/middleware"
	"github.com/satyamjaihind1/weather-tourism/internal/favorites"
	"github.com/satyamjaihind1/weather-tourism/internal/snapshot"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	SnapshotService  *snapshot.Service
	FavoritesService *favorites.Service
	ReadyChecks      []handler.ReadyCheck
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weather-tourism-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ReadyChecks...)
	snapshotHandler := handler.NewSnapshotHandler(cfg.SnapshotService)
	favoritesHandler := handler.NewFavoritesHandler(cfg.FavoritesService)

	// Rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public, unmetered)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Snapshot fans out to every upstream provider - strict rate limiting
		r.With(expensiveRateLimit).Get("/snapshot", snapshotHandler.GetSnapshot)

		// Favorites endpoints - standard rate limiting
		r.Route("/favorites", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", favoritesHandler.ListFavorites)
			r.Post("/", favoritesHandler.AddFavorite)
			r.Delete("/{name}", favoritesHandler.RemoveFavorite)
		})
	})

	return r
}
