// Package snapshot aggregates the four provider fetches for one location
// into a single result with independent per-source outcomes.
package snapshot

import (
	"time"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/derive"
	"github.com/satyamjaihind1/weather-tourism/internal/location"
	"github.com/satyamjaihind1/weather-tourism/internal/places"
	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

// Slot holds the outcome of one data source: a value or a typed failure,
// never both. A failed slot does not affect any sibling slot.
type Slot[T any] struct {
	Value T
	Err   error
}

// Ok builds a successful slot.
func Ok[T any](v T) Slot[T] {
	return Slot[T]{Value: v}
}

// Fail builds a failed slot.
func Fail[T any](err error) Slot[T] {
	return Slot[T]{Err: err}
}

// OK reports whether the slot holds a value.
func (s Slot[T]) OK() bool {
	return s.Err == nil
}

// Outlook is the derived forecast view: the midday sample per covered date
// and the upcoming window after aggregation time.
type Outlook struct {
	Daily  []weather.ForecastPoint
	Hourly []weather.ForecastPoint
}

// Snapshot is the aggregate result for one location query. It is built once
// by the aggregation call that owns it and not mutated afterwards.
type Snapshot struct {
	// RequestID is a monotonically increasing aggregation id. Renderers
	// discard results whose id is lower than the newest one they have seen.
	RequestID uint64

	// Location echoes the queried key.
	Location location.Key

	// Resolved coordinates, valid when HasCoords is true. Filled from the
	// weather response for city queries.
	Lat       float64
	Lon       float64
	HasCoords bool

	// One slot per source; each fails or succeeds on its own.
	Weather    Slot[*weather.Current]
	Forecast   Slot[Outlook]
	AirQuality Slot[*airquality.Reading]
	Places     Slot[[]places.Attraction]

	// Theme is the background theme derived from the weather condition;
	// the clear theme when weather is unavailable.
	Theme derive.Theme

	// TakenAt is the aggregation time, also the "now" of the hourly window.
	TakenAt time.Time
}
