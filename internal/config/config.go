// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the full service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string `validate:"required,numeric"`

	// Env is the deployment environment name.
	Env string `validate:"required"`

	// OWMAPIKey authenticates against the OpenWeatherMap APIs.
	OWMAPIKey string `validate:"required"`

	// OWMBaseURL is the OpenWeatherMap API base URL.
	OWMBaseURL string `validate:"required,url"`

	// OverpassURL is the Overpass interpreter endpoint.
	OverpassURL string `validate:"required,url"`

	// PlacesRadiusMeters is the attraction search radius.
	PlacesRadiusMeters int `validate:"gt=0,lte=50000"`

	// ProviderTimeout bounds every individual provider call.
	ProviderTimeout time.Duration `validate:"gt=0"`

	// FavoritesFile is the JSON file path for the file-backed favorites
	// store, used when no database is configured.
	FavoritesFile string `validate:"required"`

	// DatabaseEnabled selects the Postgres favorites backend (set via DB_HOST).
	DatabaseEnabled bool

	// OTLPEndpoint receives traces and metrics when telemetry is enabled.
	OTLPEndpoint string

	// TelemetryEnabled toggles OpenTelemetry export.
	TelemetryEnabled bool
}

// Load reads configuration from the environment, with a best-effort .env
// file load first, and validates it.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	radius, err := strconv.Atoi(getEnvOrDefault("PLACES_RADIUS_METERS", "10000"))
	if err != nil {
		return nil, fmt.Errorf("parsing PLACES_RADIUS_METERS: %w", err)
	}

	timeout, err := time.ParseDuration(getEnvOrDefault("PROVIDER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("parsing PROVIDER_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:               getEnvOrDefault("APP_PORT", "8080"),
		Env:                getEnvOrDefault("APP_ENV", "development"),
		OWMAPIKey:          os.Getenv("OWM_API_KEY"),
		OWMBaseURL:         getEnvOrDefault("OWM_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OverpassURL:        getEnvOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		PlacesRadiusMeters: radius,
		ProviderTimeout:    timeout,
		FavoritesFile:      getEnvOrDefault("FAVORITES_FILE", "favorites.json"),
		DatabaseEnabled:    os.Getenv("DB_HOST") != "",
		OTLPEndpoint:       getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:   os.Getenv("OTEL_ENABLED") == "true",
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
