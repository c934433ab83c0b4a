// Package location turns user input into the canonical key that every
// downstream fetch is addressed by: either a city name or a coordinate pair.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Resolver errors.
var (
	ErrEmptyInput          = errors.New("no city entered")
	ErrLocationUnavailable = errors.New("unable to retrieve current location")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Key identifies where to fetch data for. Exactly one variant is populated:
// a city name or a validated coordinate pair.
type Key struct {
	city   string
	lat    float64
	lon    float64
	coords bool
}

// CityKey builds a city-name key from raw user text.
// Returns ErrEmptyInput when the text is empty or whitespace only.
func CityKey(text string) (Key, error) {
	city := strings.TrimSpace(text)
	if city == "" {
		return Key{}, ErrEmptyInput
	}
	return Key{city: city}, nil
}

// CoordKey builds a coordinate key, validating the ranges.
func CoordKey(lat, lon float64) (Key, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Key{}, ErrInvalidCoordinates
	}
	return Key{lat: lat, lon: lon, coords: true}, nil
}

// City returns the city name variant, if populated.
func (k Key) City() (string, bool) {
	return k.city, !k.coords && k.city != ""
}

// Coords returns the coordinate variant, if populated.
func (k Key) Coords() (lat, lon float64, ok bool) {
	return k.lat, k.lon, k.coords
}

// IsZero reports whether the key holds neither variant.
func (k Key) IsZero() bool {
	return !k.coords && k.city == ""
}

func (k Key) String() string {
	if k.coords {
		return fmt.Sprintf("%.4f,%.4f", k.lat, k.lon)
	}
	return k.city
}

// Locator is a geolocation capability reporting the user's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// Resolution is the outcome of resolving user input into a key.
type Resolution struct {
	Key Key

	// ClearInput tells the caller to discard any pending free-text input;
	// set when the key came from the geolocation capability.
	ClearInput bool
}

// Resolver converts raw user input or a geolocation reading into a Key.
type Resolver struct {
	locator Locator
}

// NewResolver creates a resolver. locator may be nil when geolocation is
// not available in the calling environment.
func NewResolver(locator Locator) *Resolver {
	return &Resolver{locator: locator}
}

// FromText resolves free-text city input.
func (r *Resolver) FromText(text string) (Resolution, error) {
	key, err := CityKey(text)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Key: key}, nil
}

// FromCoords resolves an explicit coordinate pair.
func (r *Resolver) FromCoords(lat, lon float64) (Resolution, error) {
	key, err := CoordKey(lat, lon)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Key: key}, nil
}

// Locate resolves the user's current position via the geolocation capability.
// Any locator failure (denied, unsupported, timeout) surfaces as
// ErrLocationUnavailable; on success the pending text input is cleared.
func (r *Resolver) Locate(ctx context.Context) (Resolution, error) {
	if r.locator == nil {
		return Resolution{}, ErrLocationUnavailable
	}

	lat, lon, err := r.locator.CurrentPosition(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	key, err := CoordKey(lat, lon)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	return Resolution{Key: key, ClearInput: true}, nil
}
