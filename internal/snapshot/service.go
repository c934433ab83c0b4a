package snapshot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/derive"
	"github.com/satyamjaihind1/weather-tourism/internal/location"
	"github.com/satyamjaihind1/weather-tourism/internal/places"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

// WeatherProvider is the current-weather adapter. It accepts both key shapes.
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (*weather.Current, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (*weather.Current, error)
	Name() string
}

// ForecastProvider is the forecast adapter. It accepts both key shapes.
type ForecastProvider interface {
	ForecastByCity(ctx context.Context, city string) ([]weather.ForecastPoint, error)
	ForecastByCoords(ctx context.Context, lat, lon float64) ([]weather.ForecastPoint, error)
	Name() string
}

// AirQualityProvider is the air quality adapter. Coordinates only.
type AirQualityProvider interface {
	Reading(ctx context.Context, lat, lon float64) (*airquality.Reading, error)
	Name() string
}

// PlacesProvider is the points-of-interest adapter. Coordinates only.
type PlacesProvider interface {
	NearbyAttractions(ctx context.Context, lat, lon float64) ([]places.Attraction, error)
	Name() string
}

// ServiceConfig holds configuration for the aggregation service.
type ServiceConfig struct {
	Weather    WeatherProvider
	Forecast   ForecastProvider
	AirQuality AirQualityProvider
	Places     PlacesProvider

	// Logger for aggregation operations.
	Logger zerolog.Logger

	// Clock supplies "now" for the hourly window; defaults to the real clock.
	Clock clockwork.Clock

	// CallTimeout bounds each individual provider call (default: 10s).
	CallTimeout time.Duration
}

// Service orchestrates the four provider fetches for one location key.
//
// The weather lookup is a hard prerequisite: it resolves the coordinates
// that air quality and places require. Once it succeeds, the remaining
// fetches run concurrently and settle independently; the aggregation
// completes when the last of them does. There are no retries here.
type Service struct {
	weather    WeatherProvider
	forecast   ForecastProvider
	airQuality AirQualityProvider
	places     PlacesProvider
	logger     zerolog.Logger
	clock      clockwork.Clock
	timeout    time.Duration

	seq atomic.Uint64

	mu       sync.Mutex
	inFlight *inFlight
}

// inFlight tracks the cancel handle of the newest aggregation so a
// superseding call can abandon its predecessor's network calls.
type inFlight struct {
	cancel context.CancelFunc
}

// NewService creates a new aggregation service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	timeout := cfg.CallTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		weather:    cfg.Weather,
		forecast:   cfg.Forecast,
		airQuality: cfg.AirQuality,
		places:     cfg.Places,
		logger:     cfg.Logger,
		clock:      clock,
		timeout:    timeout,
	}
}

// Aggregate fetches all sources for key and returns their joined outcomes.
// Each slot settles on its own; one provider's failure never blanks another.
// Starting a new aggregation cancels the previous in-flight one: only the
// newest query is still relevant to the caller.
func (s *Service) Aggregate(ctx context.Context, key location.Key) *Snapshot {
	id := s.seq.Add(1)
	ctx, done := s.supersede(ctx)
	defer done()

	snap := &Snapshot{
		RequestID: id,
		Location:  key,
		Theme:     derive.ThemeClear,
		TakenAt:   s.clock.Now(),
	}

	log := s.logger.With().Uint64("request_id", id).Stringer("location", key).Logger()

	cur, err := s.fetchWeather(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("weather fetch failed")
		snap.Weather = Fail[*weather.Current](err)
		s.settleAfterWeatherFailure(ctx, key, snap, log)
		return snap
	}

	snap.Weather = Ok(cur)
	snap.Theme = derive.ThemeFor(cur.Condition)
	snap.Lat, snap.Lon, snap.HasCoords = cur.Lat, cur.Lon, true
	if lat, lon, ok := key.Coords(); ok {
		// Echo the queried coordinates rather than the provider's rounding.
		snap.Lat, snap.Lon = lat, lon
	}

	s.fanOut(ctx, key, snap, log)
	return snap
}

// supersede cancels the previous in-flight aggregation and registers this
// one as the newest. The returned func releases the registration.
func (s *Service) supersede(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	entry := &inFlight{cancel: cancel}

	s.mu.Lock()
	if s.inFlight != nil {
		s.inFlight.cancel()
	}
	s.inFlight = entry
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		if s.inFlight == entry {
			s.inFlight = nil
		}
		s.mu.Unlock()
		cancel()
	}
}

func (s *Service) fetchWeather(ctx context.Context, key location.Key) (*weather.Current, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if city, ok := key.City(); ok {
		return s.weather.CurrentByCity(ctx, city)
	}
	lat, lon, _ := key.Coords()
	return s.weather.CurrentByCoords(ctx, lat, lon)
}

// settleAfterWeatherFailure fills the remaining slots when the prerequisite
// weather lookup failed. Air quality and places have no coordinates to work
// with and are skipped; the forecast is still attempted when the original
// key already carried coordinates.
func (s *Service) settleAfterWeatherFailure(ctx context.Context, key location.Key, snap *Snapshot, log zerolog.Logger) {
	snap.AirQuality = Fail[*airquality.Reading](provider.Skipped(s.airQuality.Name()))
	snap.Places = Fail[[]places.Attraction](provider.Skipped(s.places.Name()))

	if _, _, ok := key.Coords(); !ok {
		snap.Forecast = Fail[Outlook](provider.Skipped(s.forecast.Name()))
		return
	}

	snap.Forecast = s.fetchForecast(ctx, key, log)
}

// fanOut runs the coordinate-dependent fetches concurrently and joins them.
// The slots share no state; the join point is whichever call finishes last.
func (s *Service) fanOut(ctx context.Context, key location.Key, snap *Snapshot, log zerolog.Logger) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		snap.Forecast = s.fetchForecast(ctx, key, log)
	}()

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		reading, err := s.airQuality.Reading(callCtx, snap.Lat, snap.Lon)
		if err != nil {
			log.Warn().Err(err).Msg("air quality fetch failed")
			snap.AirQuality = Fail[*airquality.Reading](err)
			return
		}
		snap.AirQuality = Ok(reading)
	}()

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		attractions, err := s.places.NearbyAttractions(callCtx, snap.Lat, snap.Lon)
		if err != nil {
			log.Warn().Err(err).Msg("places fetch failed")
			snap.Places = Fail[[]places.Attraction](err)
			return
		}
		snap.Places = Ok(attractions)
	}()

	wg.Wait()
}

func (s *Service) fetchForecast(ctx context.Context, key location.Key, log zerolog.Logger) Slot[Outlook] {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		points []weather.ForecastPoint
		err    error
	)
	if city, ok := key.City(); ok {
		points, err = s.forecast.ForecastByCity(callCtx, city)
	} else {
		lat, lon, _ := key.Coords()
		points, err = s.forecast.ForecastByCoords(callCtx, lat, lon)
	}
	if err != nil {
		log.Warn().Err(err).Msg("forecast fetch failed")
		return Fail[Outlook](err)
	}

	return Ok(Outlook{
		Daily:  derive.BucketDaily(points),
		Hourly: derive.NextHourly(points, s.clock.Now()),
	})
}
