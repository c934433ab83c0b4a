// Package openweathermap implements the air quality adapter against the
// OpenWeatherMap air pollution API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider in errors and logs.
	ProviderName = "openweathermap-air"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// ClientConfig holds configuration for the air pollution client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches the air quality index. Lookups are by coordinates only;
// the upstream has no city-name query shape.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new air pollution client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Reading fetches the current air quality index for a coordinate pair.
func (c *Client) Reading(ctx context.Context, lat, lon float64) (*airquality.Reading, error) {
	query := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', 6, 64)},
		"appid": {c.apiKey},
	}
	reqURL := c.baseURL + "/air_pollution?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, provider.Transport(ProviderName, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.Transport(ProviderName, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.Transport(ProviderName, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var owmResp airPollutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		return nil, provider.Transport(ProviderName, fmt.Errorf("decoding response: %w", err))
	}

	if len(owmResp.List) == 0 {
		return nil, provider.Transport(ProviderName, airquality.ErrNoData)
	}

	return toReading(&owmResp.List[0]), nil
}

func toReading(entry *airPollutionEntry) *airquality.Reading {
	return &airquality.Reading{
		AQILevel:   entry.Main.AQI,
		PM25:       entry.Components.PM25,
		PM10:       entry.Components.PM10,
		O3:         entry.Components.O3,
		NO2:        entry.Components.NO2,
		MeasuredAt: time.Unix(entry.Dt, 0),
		FetchedAt:  time.Now(),
	}
}

// OpenWeatherMap air pollution API response structures.

type airPollutionResponse struct {
	List []airPollutionEntry `json:"list"`
}

type airPollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components struct {
		PM25 float64 `json:"pm2_5"`
		PM10 float64 `json:"pm10"`
		O3   float64 `json:"o3"`
		NO2  float64 `json:"no2"`
	} `json:"components"`
	Dt int64 `json:"dt"`
}
