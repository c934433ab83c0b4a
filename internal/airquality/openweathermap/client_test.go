package openweathermap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/airquality/openweathermap"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/provider/resilience"
)

func newTestClient(baseURL string) *openweathermap.Client {
	cfg := resilience.DefaultClientConfig("test")
	cfg.MaxRetries = 0

	return openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     "****",
		BaseURL:    baseURL,
		HTTPClient: resilience.NewClient(cfg),
	})
}

func TestClient_Reading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/air_pollution", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("lat"), "52.52")
		assert.Contains(t, r.URL.Query().Get("lon"), "13.405")
		assert.Equal(t, "****", r.URL.Query().Get("appid"))

		response := map[string]interface{}{
			"list": []map[string]interface{}{
				{
					"main": map[string]int{"aqi": 3},
					"components": map[string]float64{
						"pm2_5": 14.2,
						"pm10":  21.7,
						"o3":    68.1,
						"no2":   19.4,
					},
					"dt": int64(1756722000),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	reading, err := client.Reading(context.Background(), 52.52, 13.405)
	require.NoError(t, err)
	require.NotNil(t, reading)

	assert.Equal(t, 3, reading.AQILevel)
	assert.Equal(t, 14.2, reading.PM25)
	assert.Equal(t, 21.7, reading.PM10)
	assert.Equal(t, 68.1, reading.O3)
	assert.Equal(t, 19.4, reading.NO2)
	assert.Equal(t, time.Unix(1756722000, 0), reading.MeasuredAt)
}

func TestClient_Reading_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"list": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reading(context.Background(), 52.52, 13.405)
	require.Error(t, err)
	assert.ErrorIs(t, err, airquality.ErrNoData)
}

func TestClient_Reading_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Reading(context.Background(), 52.52, 13.405)
	require.Error(t, err)
	assert.Equal(t, provider.KindTransport, provider.KindOf(err))
}

func TestClient_Name(t *testing.T) {
	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****"})
	assert.Equal(t, "openweathermap-air", client.Name())
}
