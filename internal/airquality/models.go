// Package airquality provides the air quality index domain model.
package airquality

import (
	"errors"
	"time"
)

// Air quality errors.
var (
	ErrNoData              = errors.New("no air quality data available")
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
)

// Reading is a point-in-time air quality measurement for a location.
type Reading struct {
	// AQILevel is the provider's integer index, 1 (good) to 5 (very poor).
	AQILevel int

	// Pollutant concentrations in µg/m³.
	PM25 float64
	PM10 float64
	O3   float64
	NO2  float64

	// Timestamps
	MeasuredAt time.Time
	FetchedAt  time.Time
}
