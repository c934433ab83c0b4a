// Package models contains the API wire models: RFC7807 problems and the
// presentation views rendered from an aggregation snapshot.
package models

import (
	"fmt"
	"time"

	"github.com/satyamjaihind1/weather-tourism/internal/airquality"
	"github.com/satyamjaihind1/weather-tourism/internal/derive"
	"github.com/satyamjaihind1/weather-tourism/internal/places"
	"github.com/satyamjaihind1/weather-tourism/internal/provider"
	"github.com/satyamjaihind1/weather-tourism/internal/snapshot"
	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

// NoAttractionsMessage is shown when the places lookup succeeds but finds
// nothing nearby. An empty result is data, not an error.
const NoAttractionsMessage = "No tourist attractions found nearby"

// iconURLFormat renders a provider icon id into a fetchable image URL.
const iconURLFormat = "https://openweathermap.org/img/wn/%s.png"

// SlotError is the rendered form of a failed source slot.
type SlotError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Section holds one source's outcome: data on success, error on failure.
type Section struct {
	Data  interface{} `json:"data,omitempty"`
	Error *SlotError  `json:"error,omitempty"`
}

// SnapshotView is the full aggregation response. Each section succeeds or
// fails independently of its siblings.
type SnapshotView struct {
	RequestID  uint64  `json:"requestId"`
	Location   string  `json:"location,omitempty"`
	Theme      string  `json:"theme"`
	TakenAt    string  `json:"takenAt"`
	Weather    Section `json:"weather"`
	Forecast   Section `json:"forecast"`
	AirQuality Section `json:"airQuality"`
	Places     Section `json:"places"`
}

// WeatherView is the rendered current-conditions payload.
type WeatherView struct {
	LocationName     string  `json:"locationName"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	TemperatureC     float64 `json:"temperatureC"`
	TemperatureLabel string  `json:"temperatureLabel"`
	ConditionText    string  `json:"conditionText"`
	Condition        string  `json:"condition"`
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
}

// DailyForecastView is one midday forecast sample.
type DailyForecastView struct {
	DateLabel        string  `json:"dateLabel"`
	TemperatureC     float64 `json:"temperatureC"`
	TemperatureLabel string  `json:"temperatureLabel"`
	ConditionText    string  `json:"conditionText"`
	IconURL          string  `json:"iconUrl,omitempty"`
}

// HourlyForecastView is one sample of the upcoming-hours window.
type HourlyForecastView struct {
	TimeLabel        string  `json:"timeLabel"`
	TemperatureC     float64 `json:"temperatureC"`
	TemperatureLabel string  `json:"temperatureLabel"`
	ConditionText    string  `json:"conditionText"`
	IconURL          string  `json:"iconUrl,omitempty"`
}

// ForecastView groups the derived daily and hourly series.
type ForecastView struct {
	Daily  []DailyForecastView  `json:"daily"`
	Hourly []HourlyForecastView `json:"hourly"`
}

// AirQualityView is the rendered air quality payload.
type AirQualityView struct {
	Level int     `json:"level"`
	Label string  `json:"label"`
	PM25  float64 `json:"pm25"`
	PM10  float64 `json:"pm10"`
	O3    float64 `json:"o3"`
	NO2   float64 `json:"no2"`
}

// AttractionView is one nearby attraction.
type AttractionView struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// MarkerView is the marker payload consumed by the map widget.
type MarkerView struct {
	Title string  `json:"title"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// PlacesView is the rendered attractions payload. Message is set instead of
// attractions when nothing was found.
type PlacesView struct {
	Attractions []AttractionView `json:"attractions"`
	Markers     []MarkerView     `json:"markers"`
	Message     string           `json:"message,omitempty"`
}

// NewSnapshotView renders an aggregation snapshot into its response view.
func NewSnapshotView(snap *snapshot.Snapshot) SnapshotView {
	view := SnapshotView{
		RequestID: snap.RequestID,
		Location:  snap.Location.String(),
		Theme:     string(snap.Theme),
		TakenAt:   snap.TakenAt.UTC().Format(time.RFC3339),
	}

	if snap.Weather.OK() {
		view.Weather = Section{Data: newWeatherView(snap.Weather.Value)}
	} else {
		view.Weather = failedSection(snap.Weather.Err)
	}

	if snap.Forecast.OK() {
		view.Forecast = Section{Data: newForecastView(snap.Forecast.Value)}
	} else {
		view.Forecast = failedSection(snap.Forecast.Err)
	}

	if snap.AirQuality.OK() {
		view.AirQuality = Section{Data: newAirQualityView(snap.AirQuality.Value)}
	} else {
		view.AirQuality = failedSection(snap.AirQuality.Err)
	}

	if snap.Places.OK() {
		view.Places = Section{Data: newPlacesView(snap.Places.Value)}
	} else {
		view.Places = failedSection(snap.Places.Err)
	}

	return view
}

func failedSection(err error) Section {
	return Section{Error: &SlotError{
		Kind:    string(provider.KindOf(err)),
		Message: err.Error(),
	}}
}

func newWeatherView(cur *weather.Current) WeatherView {
	return WeatherView{
		LocationName:     cur.LocationName,
		Lat:              cur.Lat,
		Lon:              cur.Lon,
		TemperatureC:     cur.TemperatureC,
		TemperatureLabel: temperatureLabel(cur.TemperatureC),
		ConditionText:    cur.ConditionText,
		Condition:        string(cur.Condition),
		Sunrise:          cur.Sunrise.Format("15:04"),
		Sunset:           cur.Sunset.Format("15:04"),
	}
}

func newForecastView(outlook snapshot.Outlook) ForecastView {
	view := ForecastView{
		Daily:  make([]DailyForecastView, 0, len(outlook.Daily)),
		Hourly: make([]HourlyForecastView, 0, len(outlook.Hourly)),
	}

	for _, p := range outlook.Daily {
		view.Daily = append(view.Daily, DailyForecastView{
			DateLabel:        p.Time.Format("Mon, Jan 2"),
			TemperatureC:     p.TemperatureC,
			TemperatureLabel: temperatureLabel(p.TemperatureC),
			ConditionText:    p.ConditionText,
			IconURL:          iconURL(p.IconID),
		})
	}

	for _, p := range outlook.Hourly {
		view.Hourly = append(view.Hourly, HourlyForecastView{
			TimeLabel:        p.Time.Format("3:04 PM"),
			TemperatureC:     p.TemperatureC,
			TemperatureLabel: temperatureLabel(p.TemperatureC),
			ConditionText:    p.ConditionText,
			IconURL:          iconURL(p.IconID),
		})
	}

	return view
}

func newAirQualityView(reading *airquality.Reading) AirQualityView {
	class := derive.ClassifyAQI(reading.AQILevel)
	return AirQualityView{
		Level: reading.AQILevel,
		Label: class.Label,
		PM25:  reading.PM25,
		PM10:  reading.PM10,
		O3:    reading.O3,
		NO2:   reading.NO2,
	}
}

func newPlacesView(attractions []places.Attraction) PlacesView {
	view := PlacesView{
		Attractions: make([]AttractionView, 0, len(attractions)),
		Markers:     make([]MarkerView, 0, len(attractions)),
	}

	for _, a := range attractions {
		view.Attractions = append(view.Attractions, AttractionView{
			Name: a.DisplayName(),
			Lat:  a.Lat,
			Lon:  a.Lon,
		})
		view.Markers = append(view.Markers, MarkerView{
			Title: a.MarkerTitle(),
			Lat:   a.Lat,
			Lng:   a.Lon,
		})
	}

	if len(attractions) == 0 {
		view.Message = NoAttractionsMessage
	}

	return view
}

func temperatureLabel(c float64) string {
	return fmt.Sprintf("%.1f°C", c)
}

func iconURL(iconID string) string {
	if iconID == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, iconID)
}

// FavoritesView is the favorites list response.
type FavoritesView struct {
	SchemaVersion int      `json:"schemaVersion"`
	Names         []string `json:"names"`
}
