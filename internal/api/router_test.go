package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/api"
	"github.com/satyamjaihind1/weather-tourism/internal/favorites"
	"github.com/satyamjaihind1/weather-tourism/internal/places"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/snapshot"
	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

type stubWeather struct {
	current *weather.Current
	err     error
}

func (s *stubWeather) CurrentByCity(_ context.Context, _ string) (*weather.Current, error) {
	return s.current, s.err
}

func (s *stubWeather) CurrentByCoords(_ context.Context, _, _ float64) (*weather.Current, error) {
	return s.current, s.err
}

func (s *stubWeather) Name() string { return "stub-weather" }

type stubForecast struct{}

func (s *stubForecast) ForecastByCity(_ context.Context, _ string) ([]weather.ForecastPoint, error) {
	return forecastSeries(), nil
}

func (s *stubForecast) ForecastByCoords(_ context.Context, _, _ float64) ([]weather.ForecastPoint, error) {
	return forecastSeries(), nil
}

func (s *stubForecast) Name() string { return "stub-forecast" }

type stubAirQuality struct{}

func (s *stubAirQuality) Reading(_ context.Context, _, _ float64) (*airquality.Reading, error) {
	return &airquality.Reading{AQILevel: 2, PM25: 8.1}, nil
}

func (s *stubAirQuality) Name() string { return "stub-air" }

type stubPlaces struct {
	attractions []places.Attraction
}

func (s *stubPlaces) NearbyAttractions(_ context.Context, _, _ float64) ([]places.Attraction, error) {
	return s.attractions, nil
}

func (s *stubPlaces) Name() string { return "stub-places" }

func forecastSeries() []weather.ForecastPoint {
	base := time.Now().Add(time.Hour).Truncate(time.Hour)
	series := make([]weather.ForecastPoint, 0, 6)
	for i := 0; i < 6; i++ {
		ts := base.Add(time.Duration(i) * 3 * time.Hour)
		series = append(series, weather.ForecastPoint{
			Time:          ts,
			LocalTimeText: ts.Format("2006-01-02 15:04:05"),
			TemperatureC:  12,
		})
	}
	return series
}

func newTestRouter(t *testing.T, weatherStub *stubWeather) http.Handler {
	t.Helper()

	favoritesService, err := favorites.NewService(context.Background(), favorites.ServiceConfig{
		Repository: favorites.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)

	snapshotService := snapshot.NewService(snapshot.ServiceConfig{
		Weather:    weatherStub,
		Forecast:   &stubForecast{},
		AirQuality: &stubAirQuality{},
		Places:     &stubPlaces{attractions: []places.Attraction{{Name: "Brandenburg Gate", Lat: 52.5163, Lon: 13.3777}}},
		Logger:     zerolog.Nop(),
	})

	return api.NewRouter(api.RouterConfig{
		Version:          "test",
		BuildTime:        "test",
		Logger:           zerolog.Nop(),
		SnapshotService:  snapshotService,
		FavoritesService: favoritesService,
	})
}

func healthyWeather() *stubWeather {
	return &stubWeather{current: &weather.Current{
		LocationName:  "Berlin",
		Lat:           52.52,
		Lon:           13.405,
		TemperatureC:  5,
		ConditionText: "light rain",
		Condition:     weather.ConditionRain,
	}}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestRouter_Ready(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Snapshot_ByCity(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot?city=Berlin", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		RequestID uint64 `json:"requestId"`
		Theme     string `json:"theme"`
		Weather   struct {
			Data *struct {
				LocationName string `json:"locationName"`
			} `json:"data"`
		} `json:"weather"`
		AirQuality struct {
			Data *struct {
				Label string `json:"label"`
			} `json:"data"`
		} `json:"airQuality"`
		Places struct {
			Data *struct {
				Attractions []struct {
					Name string `json:"name"`
				} `json:"attractions"`
			} `json:"data"`
		} `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.NotZero(t, view.RequestID)
	assert.Equal(t, "rain", view.Theme)
	require.NotNil(t, view.Weather.Data)
	assert.Equal(t, "Berlin", view.Weather.Data.LocationName)
	require.NotNil(t, view.AirQuality.Data)
	assert.Equal(t, "Fair", view.AirQuality.Data.Label)
	require.NotNil(t, view.Places.Data)
	require.Len(t, view.Places.Data.Attractions, 1)
}

func TestRouter_Snapshot_EmptyCity(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot?city=%20%20", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem struct {
		Status int    `json:"status"`
		Title  string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusBadRequest, problem.Status)
}

func TestRouter_Snapshot_ByCoords(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot?lat=52.52&lon=13.405", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Snapshot_InvalidCoords(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	for _, query := range []string{"lat=abc&lon=13.4", "lat=95&lon=13.4", "lat=52.5"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestRouter_Snapshot_WeatherFailureRendersSlotErrors(t *testing.T) {
	router := newTestRouter(t, &stubWeather{
		err: provider.NotFound("stub-weather", weather.ErrCityNotFound),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot?city=Nowhereville", nil))

	// Provider failures surface inside the payload, not as an HTTP error.
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Theme   string `json:"theme"`
		Weather struct {
			Error *struct {
				Kind string `json:"kind"`
			} `json:"error"`
		} `json:"weather"`
		AirQuality struct {
			Error *struct {
				Kind string `json:"kind"`
			} `json:"error"`
		} `json:"airQuality"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	require.NotNil(t, view.Weather.Error)
	assert.Equal(t, "not_found", view.Weather.Error.Kind)
	require.NotNil(t, view.AirQuality.Error)
	assert.Equal(t, "skipped", view.AirQuality.Error.Kind)
	assert.Equal(t, "clear", view.Theme)
}

func TestRouter_Favorites_CRUD(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	// Initially empty
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/favorites/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		SchemaVersion int      `json:"schemaVersion"`
		Names         []string `json:"names"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.SchemaVersion)
	assert.Empty(t, list.Names)

	// Add
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/favorites/", strings.NewReader(`{"name":"Paris"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate add is a no-op
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/favorites/", strings.NewReader(`{"name":"Paris"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []string{"Paris"}, list.Names)

	// Remove
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/favorites/Paris", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Names)

	// Removing an absent name is a no-op
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/favorites/Tokyo", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Favorites_AddEmptyName(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/favorites/", strings.NewReader(`{"name":"  "}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Favorites_MalformedBody(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/favorites/", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, healthyWeather())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
