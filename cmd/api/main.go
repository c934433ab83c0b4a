// Package main provides the entrypoint for the weather-tourism API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	owmair "github.com/satyamjaihind1/weather-tourism/internal/airquality/openweathermap"
	"github.com/satyamjaihind1/weather-tourism/internal/api"
	"github.com/satyamjaihind1/weather-tourism/internal/api/handler"
	"github.com/satyamjaihind1/weather-tourism/internal/api/middleware"
	"github.com/satyamjaihind1/weather-tourism/internal/config"
	"github.com/satyamjaihind1/weather-tourism/internal/database"
	"github.com/satyamjaihind1/weather-tourism/internal/favorites"
	"github.com/satyamjaihind1/weather-tourism/internal/places/overpass"
	"github.com/satyamjaihind1/weather-tourism/internal/provider/resilience"
	"github.com/satyamjaihind1/weather-tourism/internal/snapshot"
	"github.com/satyamjaihind1/weather-tourism/internal/telemetry"
	owmweather "github.com/satyamjaihind1/weather-tourism/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weather-tourism-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting weather-tourism API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Pick the favorites backend: Postgres when a database is configured,
	// otherwise the local JSON file.
	var (
		favoritesRepo favorites.Repository
		readyChecks   []handler.ReadyCheck
	)
	if cfg.DatabaseEnabled {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		pgRepo := favorites.NewPostgresRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure favorites schema")
		}
		favoritesRepo = pgRepo
		readyChecks = append(readyChecks, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	} else {
		favoritesRepo = favorites.NewFileRepository(cfg.FavoritesFile)
		log.Info().Str("path", cfg.FavoritesFile).Msg("using file-backed favorites store")
	}

	favoritesService, err := favorites.NewService(ctx, favorites.ServiceConfig{
		Repository: favoritesRepo,
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load favorites")
	}
	log.Info().Int("count", len(favoritesService.List())).Msg("favorites service initialized")

	// Provider clients share the resilient HTTP client pattern but keep
	// separate circuit breakers per upstream.
	weatherClient := owmweather.NewClient(owmweather.ClientConfig{
		APIKey:     cfg.OWMAPIKey,
		BaseURL:    cfg.OWMBaseURL,
		HTTPClient: resilience.NewClient(providerClientConfig(owmweather.ProviderName, cfg.ProviderTimeout)),
		Logger:     log,
	})
	airClient := owmair.NewClient(owmair.ClientConfig{
		APIKey:     cfg.OWMAPIKey,
		BaseURL:    cfg.OWMBaseURL,
		HTTPClient: resilience.NewClient(providerClientConfig(owmair.ProviderName, cfg.ProviderTimeout)),
		Logger:     log,
	})
	placesClient := overpass.NewClient(overpass.ClientConfig{
		BaseURL:      cfg.OverpassURL,
		RadiusMeters: cfg.PlacesRadiusMeters,
		HTTPClient:   resilience.NewClient(providerClientConfig(overpass.ProviderName, cfg.ProviderTimeout)),
		Logger:       log,
	})

	snapshotService := snapshot.NewService(snapshot.ServiceConfig{
		Weather:     weatherClient,
		Forecast:    weatherClient,
		AirQuality:  airClient,
		Places:      placesClient,
		Logger:      log,
		CallTimeout: cfg.ProviderTimeout,
	})
	log.Info().Msg("snapshot service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		SnapshotService:  snapshotService,
		FavoritesService: favoritesService,
		ReadyChecks:      readyChecks,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// providerClientConfig applies the configured call timeout on top of the
// per-provider resilience defaults.
func providerClientConfig(name string, timeout time.Duration) resilience.ClientConfig {
	cfg := resilience.DefaultClientConfig(name)
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg
}
