// Package weather provides current-conditions and forecast domain models.
package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrCityNotFound        = errors.New("city not found")
)

// Condition is the coarse weather class derived from the provider's
// free-text description. It drives the background theme.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionSnow         Condition = "SNOW"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionMist         Condition = "MIST"
	ConditionOther        Condition = "OTHER"
)

// Current represents current weather at a resolved location.
type Current struct {
	// LocationName is the display name reported by the provider.
	LocationName string

	// Resolved coordinates; filled from the provider response when the
	// lookup was by city name.
	Lat float64
	Lon float64

	// TemperatureC is the temperature in Celsius.
	TemperatureC float64

	// ConditionText is the provider's free-text description ("light rain").
	ConditionText string

	// Condition is the classified condition derived from ConditionText.
	Condition Condition

	// Sun times for the observation day.
	Sunrise time.Time
	Sunset  time.Time

	// Timestamps
	ObservedAt time.Time
	FetchedAt  time.Time
}

// ForecastPoint is one sample of the provider's forecast series,
// typically on a 3-hour cadence.
type ForecastPoint struct {
	// Time is the forecast timestamp.
	Time time.Time

	// LocalTimeText is the provider's formatted local timestamp string
	// ("2026-09-01 12:00:00"). Daily bucketing matches on this text exactly
	// as delivered, never on a recomputed local time.
	LocalTimeText string

	// TemperatureC is the forecast temperature in Celsius.
	TemperatureC float64

	// ConditionText is the free-text description for the sample.
	ConditionText string

	// IconID is the provider's icon identifier ("10d").
	IconID string
}
