// Package openweathermap implements the weather and forecast adapters
// against the OpenWeatherMap data API.
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

	"github.com/satyamjaihind1/weather-tourism/internal/derive"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/provider/resilience"
	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

const (
	// ProviderName identifies this provider in errors and logs.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches current weather and the 5-day / 3-hour forecast.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
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

// CurrentByCity fetches current weather for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*weather.Current, error) {
	query := url.Values{"q": {city}}
	return c.fetchCurrent(ctx, query)
}

// CurrentByCoords fetches current weather for a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*weather.Current, error) {
	return c.fetchCurrent(ctx, coordQuery(lat, lon))
}

// ForecastByCity fetches the forecast series for a city name.
func (c *Client) ForecastByCity(ctx context.Context, city string) ([]weather.ForecastPoint, error) {
	query := url.Values{"q": {city}}
	return c.fetchForecast(ctx, query)
}

// ForecastByCoords fetches the forecast series for a coordinate pair.
func (c *Client) ForecastByCoords(ctx context.Context, lat, lon float64) ([]weather.ForecastPoint, error) {
	return c.fetchForecast(ctx, coordQuery(lat, lon))
}

func (c *Client) fetchCurrent(ctx context.Context, query url.Values) (*weather.Current, error) {
	var owmResp currentWeatherResponse
	if err := c.get(ctx, "/weather", query, &owmResp); err != nil {
		return nil, err
	}
	return toCurrent(&owmResp), nil
}

func (c *Client) fetchForecast(ctx context.Context, query url.Values) ([]weather.ForecastPoint, error) {
	var owmResp forecastResponse
	if err := c.get(ctx, "/forecast", query, &owmResp); err != nil {
		return nil, err
	}
	return toForecastPoints(&owmResp), nil
}

// get executes a GET against path, decoding the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return provider.Transport(ProviderName, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Transport(ProviderName, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return provider.NotFound(ProviderName, weather.ErrCityNotFound)
	default:
		return provider.Transport(ProviderName, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return provider.Transport(ProviderName, fmt.Errorf("decoding response: %w", err))
	}

	return nil
}

func coordQuery(lat, lon float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', 6, 64)},
	}
}

// toCurrent converts the OpenWeatherMap response to the domain model.
func toCurrent(resp *currentWeatherResponse) *weather.Current {
	cur := &weather.Current{
		LocationName: resp.Name,
		Lat:          resp.Coord.Lat,
		Lon:          resp.Coord.Lon,
		TemperatureC: resp.Main.Temp,
		Sunrise:      time.Unix(resp.Sys.Sunrise, 0),
		Sunset:       time.Unix(resp.Sys.Sunset, 0),
		ObservedAt:   time.Unix(resp.Dt, 0),
		FetchedAt:    time.Now(),
	}

	if len(resp.Weather) > 0 {
		cur.ConditionText = resp.Weather[0].Description
	}
	cur.Condition = derive.ClassifyCondition(cur.ConditionText)

	return cur
}

// toForecastPoints converts the forecast list, preserving provider order and
// the formatted local timestamp text used for daily bucketing.
func toForecastPoints(resp *forecastResponse) []weather.ForecastPoint {
	points := make([]weather.ForecastPoint, 0, len(resp.List))

	for _, item := range resp.List {
		p := weather.ForecastPoint{
			Time:          time.Unix(item.Dt, 0),
			LocalTimeText: item.DtTxt,
			TemperatureC:  item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			p.ConditionText = item.Weather[0].Description
			p.IconID = item.Weather[0].Icon
		}
		points = append(points, p)
	}

	return points
}

// OpenWeatherMap API response structures.

type currentWeatherResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
}
