package snapshot_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/derive"
	"github.com/satyamjaihind1/weather-tourism/internal/location"
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

type stubForecast struct {
	mu         sync.Mutex
	points     []weather.ForecastPoint
	err        error
	cityCalls  int
	coordCalls int
}

func (s *stubForecast) ForecastByCity(_ context.Context, _ string) ([]weather.ForecastPoint, error) {
	s.mu.Lock()
	s.cityCalls++
	s.mu.Unlock()
	return s.points, s.err
}

func (s *stubForecast) ForecastByCoords(_ context.Context, _, _ float64) ([]weather.ForecastPoint, error) {
	s.mu.Lock()
	s.coordCalls++
	s.mu.Unlock()
	return s.points, s.err
}

func (s *stubForecast) Name() string { return "stub-forecast" }

type stubAirQuality struct {
	reading *airquality.Reading
	err     error
}

func (s *stubAirQuality) Reading(_ context.Context, _, _ float64) (*airquality.Reading, error) {
	return s.reading, s.err
}

func (s *stubAirQuality) Name() string { return "stub-air" }

type stubPlaces struct {
	attractions []places.Attraction
	err         error
}

func (s *stubPlaces) NearbyAttractions(_ context.Context, _, _ float64) ([]places.Attraction, error) {
	return s.attractions, s.err
}

func (s *stubPlaces) Name() string { return "stub-places" }

func berlinWeather() *weather.Current {
	return &weather.Current{
		LocationName:  "Berlin",
		Lat:           52.52,
		Lon:           13.405,
		TemperatureC:  5.0,
		ConditionText: "light rain",
		Condition:     weather.ConditionRain,
	}
}

func forecastSeries() []weather.ForecastPoint {
	base, _ := time.Parse("2006-01-02 15:04:05", "2026-09-01 09:00:00")
	series := make([]weather.ForecastPoint, 0, 12)
	for i := 0; i < 12; i++ {
		ts := base.Add(time.Duration(i) * 3 * time.Hour)
		series = append(series, weather.ForecastPoint{
			Time:          ts,
			LocalTimeText: ts.Format("2006-01-02 15:04:05"),
			TemperatureC:  10 + float64(i),
		})
	}
	return series
}

func newService(w snapshot.WeatherProvider, f snapshot.ForecastProvider, a snapshot.AirQualityProvider, p snapshot.PlacesProvider, clock clockwork.Clock) *snapshot.Service {
	return snapshot.NewService(snapshot.ServiceConfig{
		Weather:    w,
		Forecast:   f,
		AirQuality: a,
		Places:     p,
		Logger:     zerolog.Nop(),
		Clock:      clock,
	})
}

func cityKey(t *testing.T, city string) location.Key {
	t.Helper()
	key, err := location.CityKey(city)
	require.NoError(t, err)
	return key
}

func TestService_Aggregate_AllSourcesSucceed(t *testing.T) {
	now, _ := time.Parse("2006-01-02 15:04:05", "2026-09-01 10:30:00")
	clock := clockwork.NewFakeClockAt(now)

	svc := newService(
		&stubWeather{current: berlinWeather()},
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 2}},
		&stubPlaces{attractions: []places.Attraction{{Name: "Brandenburg Gate", Lat: 52.5163, Lon: 13.3777}}},
		clock,
	)

	snap := svc.Aggregate(context.Background(), cityKey(t, "Berlin"))

	require.True(t, snap.Weather.OK())
	assert.Equal(t, "Berlin", snap.Weather.Value.LocationName)
	assert.Equal(t, derive.ThemeRain, snap.Theme)
	assert.True(t, snap.HasCoords)
	assert.Equal(t, 52.52, snap.Lat)
	assert.Equal(t, 13.405, snap.Lon)
	assert.Equal(t, now, snap.TakenAt)

	require.True(t, snap.Forecast.OK())
	assert.Len(t, snap.Forecast.Value.Daily, 2)
	assert.Len(t, snap.Forecast.Value.Hourly, 4)
	assert.Equal(t, "2026-09-01 12:00:00", snap.Forecast.Value.Hourly[0].LocalTimeText)

	require.True(t, snap.AirQuality.OK())
	assert.Equal(t, 2, snap.AirQuality.Value.AQILevel)

	require.True(t, snap.Places.OK())
	assert.Len(t, snap.Places.Value, 1)
}

func TestService_Aggregate_OneSlotFailureIsIsolated(t *testing.T) {
	svc := newService(
		&stubWeather{current: berlinWeather()},
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{err: provider.Transport("stub-air", airquality.ErrNoData)},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	snap := svc.Aggregate(context.Background(), cityKey(t, "Berlin"))

	assert.True(t, snap.Weather.OK())
	assert.True(t, snap.Forecast.OK())
	assert.True(t, snap.Places.OK())

	require.False(t, snap.AirQuality.OK())
	assert.Equal(t, provider.KindTransport, provider.KindOf(snap.AirQuality.Err))

	// The theme still reflects the successful weather slot.
	assert.Equal(t, derive.ThemeRain, snap.Theme)
}

func TestService_Aggregate_EmptyPlacesIsSuccess(t *testing.T) {
	svc := newService(
		&stubWeather{current: berlinWeather()},
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	snap := svc.Aggregate(context.Background(), cityKey(t, "Berlin"))

	require.True(t, snap.Places.OK())
	assert.Empty(t, snap.Places.Value)
}

func TestService_Aggregate_WeatherFailureSkipsDependents(t *testing.T) {
	forecast := &stubForecast{points: forecastSeries()}
	svc := newService(
		&stubWeather{err: provider.NotFound("stub-weather", weather.ErrCityNotFound)},
		forecast,
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	snap := svc.Aggregate(context.Background(), cityKey(t, "Nowhereville"))

	require.False(t, snap.Weather.OK())
	assert.Equal(t, provider.KindNotFound, provider.KindOf(snap.Weather.Err))

	// No coordinates resolved: everything downstream is skipped, and the
	// forecast is never attempted for a city key.
	assert.Equal(t, provider.KindSkipped, provider.KindOf(snap.Forecast.Err))
	assert.Equal(t, provider.KindSkipped, provider.KindOf(snap.AirQuality.Err))
	assert.Equal(t, provider.KindSkipped, provider.KindOf(snap.Places.Err))
	assert.Equal(t, 0, forecast.cityCalls)
	assert.Equal(t, 0, forecast.coordCalls)

	assert.False(t, snap.HasCoords)
	assert.Equal(t, derive.ThemeClear, snap.Theme)
}

func TestService_Aggregate_WeatherFailureWithCoordKeyStillFetchesForecast(t *testing.T) {
	now, _ := time.Parse("2006-01-02 15:04:05", "2026-09-01 10:30:00")
	forecast := &stubForecast{points: forecastSeries()}
	svc := newService(
		&stubWeather{err: provider.Transport("stub-weather", weather.ErrProviderUnavailable)},
		forecast,
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClockAt(now),
	)

	key, err := location.CoordKey(52.52, 13.405)
	require.NoError(t, err)

	snap := svc.Aggregate(context.Background(), key)

	require.False(t, snap.Weather.OK())

	// The coordinate key carries everything the forecast fetch needs.
	require.True(t, snap.Forecast.OK())
	assert.Equal(t, 1, forecast.coordCalls)
	assert.Len(t, snap.Forecast.Value.Hourly, 4)

	// Air quality and places still need the weather-resolved position.
	assert.Equal(t, provider.KindSkipped, provider.KindOf(snap.AirQuality.Err))
	assert.Equal(t, provider.KindSkipped, provider.KindOf(snap.Places.Err))
}

func TestService_Aggregate_CoordKeyEchoesQueriedCoordinates(t *testing.T) {
	svc := newService(
		&stubWeather{current: berlinWeather()},
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	// Provider rounds to 52.52/13.405; the queried pair wins.
	key, err := location.CoordKey(52.520008, 13.404954)
	require.NoError(t, err)

	snap := svc.Aggregate(context.Background(), key)

	require.True(t, snap.Weather.OK())
	assert.Equal(t, 52.520008, snap.Lat)
	assert.Equal(t, 13.404954, snap.Lon)
}

func TestService_Aggregate_RequestIDsAreMonotonic(t *testing.T) {
	svc := newService(
		&stubWeather{current: berlinWeather()},
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	first := svc.Aggregate(context.Background(), cityKey(t, "Berlin"))
	second := svc.Aggregate(context.Background(), cityKey(t, "Paris"))

	assert.Greater(t, second.RequestID, first.RequestID)
}

// blockingWeather blocks until its context is canceled, then reports the
// context error.
type blockingWeather struct {
	started chan struct{}
	once    sync.Once
}

func (b *blockingWeather) CurrentByCity(ctx context.Context, _ string) (*weather.Current, error) {
	b.once.Do(func() { close(b.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingWeather) CurrentByCoords(ctx context.Context, _, _ float64) (*weather.Current, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingWeather) Name() string { return "blocking-weather" }

func TestService_Aggregate_NewCallSupersedesInFlight(t *testing.T) {
	blocking := &blockingWeather{started: make(chan struct{})}
	svc := newService(
		blocking,
		&stubForecast{points: forecastSeries()},
		&stubAirQuality{reading: &airquality.Reading{AQILevel: 1}},
		&stubPlaces{attractions: []places.Attraction{}},
		clockwork.NewFakeClock(),
	)

	results := make(chan *snapshot.Snapshot, 1)
	go func() {
		results <- svc.Aggregate(context.Background(), cityKey(t, "Berlin"))
	}()

	// Wait until the first aggregation is inside its weather call, then
	// supersede it. The blocked call unblocks via cancellation.
	<-blocking.started
	second := svc.Aggregate(context.Background(), cityKey(t, "Paris"))

	first := <-results

	assert.Greater(t, second.RequestID, first.RequestID)
	require.False(t, first.Weather.OK())
	assert.ErrorIs(t, first.Weather.Err, context.Canceled)
}
