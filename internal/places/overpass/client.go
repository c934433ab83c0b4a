// Package overpass implements the points-of-interest adapter against the
// Overpass API, querying OpenStreetMap tourism=attraction elements.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/satyamjaihind1/weather-tourism/internal/places"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/provider/resilience"
)

const (
	// ProviderName identifies this provider in errors and logs.
	ProviderName = "overpass"

	// DefaultBaseURL is the public Overpass API interpreter endpoint.
	DefaultBaseURL = "https://overpass-api.de/api/interpreter"

	// DefaultRadiusMeters is the search radius around the location.
	DefaultRadiusMeters = 10000
)

// ClientConfig holds configuration for the Overpass client.
type ClientConfig struct {
	// BaseURL is the interpreter endpoint (optional).
	BaseURL string

	// RadiusMeters is the search radius (optional, defaults to 10km).
	RadiusMeters int

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches tourist attractions near a coordinate pair.
type Client struct {
	baseURL    string
	radius     int
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Overpass client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	radius := cfg.RadiusMeters
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		radius:     radius,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// NearbyAttractions fetches tourism attractions around a coordinate pair.
// An empty result is a valid outcome, returned as an empty slice with a nil
// error so callers can render "none found" rather than a failure.
func (c *Client) NearbyAttractions(ctx context.Context, lat, lon float64) ([]places.Attraction, error) {
	query := buildQuery(lat, lon, c.radius)
	reqURL := c.baseURL + "?data=" + url.QueryEscape(query)

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

	var overpassResp interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		return nil, provider.Transport(ProviderName, fmt.Errorf("decoding response: %w", err))
	}

	return toAttractions(overpassResp.Elements), nil
}

// buildQuery renders the Overpass QL statement for attractions around a point.
func buildQuery(lat, lon float64, radius int) string {
	var b strings.Builder
	b.WriteString("[out:json];(")
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&b, `%s["tourism"="attraction"](around:%d,%f,%f);`, kind, radius, lat, lon)
	}
	b.WriteString(");out center;")
	return b.String()
}

// toAttractions normalizes raw elements. Nodes carry their own coordinates;
// ways and relations use the provider-supplied centroid. Elements with no
// usable position are dropped.
func toAttractions(elements []element) []places.Attraction {
	attractions := make([]places.Attraction, 0, len(elements))

	for _, el := range elements {
		var lat, lon float64
		switch el.Type {
		case "node":
			lat, lon = el.Lat, el.Lon
		case "way", "relation":
			if el.Center == nil {
				continue
			}
			lat, lon = el.Center.Lat, el.Center.Lon
		default:
			continue
		}

		attractions = append(attractions, places.Attraction{
			Name: el.Tags.Name,
			Lat:  lat,
			Lon:  lon,
		})
	}

	return attractions
}

// Overpass interpreter response structures.

type interpreterResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type   string  `json:"type"`
	ID     int64   `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags struct {
		Name string `json:"name"`
	} `json:"tags"`
}
