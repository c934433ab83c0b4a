// Package places provides the points-of-interest domain model.
package places

import "errors"

// Places errors.
var (
	ErrProviderUnavailable = errors.New("places provider unavailable")
)

// Default display names for unnamed map elements.
const (
	UnnamedAttraction  = "Unnamed attraction"
	DefaultMarkerTitle = "Tourist Attraction"
)

// Attraction is a nearby point of interest. Name is the raw provider name
// and may be empty; use DisplayName or MarkerTitle when rendering.
type Attraction struct {
	Name string
	Lat  float64
	Lon  float64
}

// DisplayName returns the list label, defaulting for unnamed elements.
func (a Attraction) DisplayName() string {
	if a.Name == "" {
		return UnnamedAttraction
	}
	return a.Name
}

// MarkerTitle returns the map marker label, defaulting for unnamed elements.
func (a Attraction) MarkerTitle() string {
	if a.Name == "" {
		return DefaultMarkerTitle
	}
	return a.Name
}
