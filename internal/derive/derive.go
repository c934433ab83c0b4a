// Package derive contains the pure transformations applied to normalized
// provider records before rendering: condition classification, forecast
// bucketing, the upcoming-hours window, AQI labeling and theme selection.
// Everything here is deterministic and free of I/O.
package derive

import (
	"strings"
	"time"

	"github.com/satyamjaihind1/weather-tourism/internal/weather"
)

// conditionRule maps description keywords to a condition class. Rules are
// evaluated in order; the first keyword hit wins.
type conditionRule struct {
	keywords []string
	result   weather.Condition
}

var conditionRules = []conditionRule{
	{keywords: []string{"clear"}, result: weather.ConditionClear},
	{keywords: []string{"cloud"}, result: weather.ConditionClouds},
	{keywords: []string{"rain", "drizzle"}, result: weather.ConditionRain},
	{keywords: []string{"snow"}, result: weather.ConditionSnow},
	{keywords: []string{"thunderstorm"}, result: weather.ConditionThunderstorm},
	{keywords: []string{"mist", "fog", "haze"}, result: weather.ConditionMist},
}

// ClassifyCondition derives the coarse condition class from a provider's
// free-text description. Matching is a case-insensitive substring check in
// fixed priority order ("light rain and mist" classifies as rain, not mist).
// Unmatched text falls back to clear.
func ClassifyCondition(text string) weather.Condition {
	lowered := strings.ToLower(text)
	for _, rule := range conditionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.result
			}
		}
	}
	return weather.ConditionClear
}

// middayMarker is the local time-of-day that represents a forecast day.
const middayMarker = "12:00:00"

// BucketDaily selects the midday sample of each covered date: the points
// whose provider-formatted local time contains "12:00:00", at most one per
// calendar date, in provider order. Dates without a midday sample are
// omitted rather than backfilled.
func BucketDaily(points []weather.ForecastPoint) []weather.ForecastPoint {
	var daily []weather.ForecastPoint
	seen := make(map[string]bool)

	for _, p := range points {
		if !strings.Contains(p.LocalTimeText, middayMarker) {
			continue
		}
		date, _, _ := strings.Cut(p.LocalTimeText, " ")
		if date == "" {
			date = p.Time.Format("2006-01-02")
		}
		if seen[date] {
			continue
		}
		seen[date] = true
		daily = append(daily, p)
	}

	return daily
}

// NextHourly returns the upcoming forecast window: the first 4 points
// strictly after now, in sequence order. The window is 4 samples regardless
// of the provider's cadence, not a fixed 12-hour span.
func NextHourly(points []weather.ForecastPoint, now time.Time) []weather.ForecastPoint {
	var upcoming []weather.ForecastPoint
	for _, p := range points {
		if !p.Time.After(now) {
			continue
		}
		upcoming = append(upcoming, p)
		if len(upcoming) == 4 {
			break
		}
	}
	return upcoming
}

// AQIClass is the display classification of an air quality index level.
type AQIClass struct {
	Label string
	// Rank is the severity rank; equal to the index level for known levels,
	// 0 for unknown.
	Rank int
}

var aqiTable = map[int]string{
	1: "Good",
	2: "Fair",
	3: "Moderate",
	4: "Poor",
	5: "Very Poor",
}

// ClassifyAQI maps an air quality index level onto its display class.
// Levels outside 1..5 classify as Unknown.
func ClassifyAQI(level int) AQIClass {
	label, ok := aqiTable[level]
	if !ok {
		return AQIClass{Label: "Unknown"}
	}
	return AQIClass{Label: label, Rank: level}
}

// Theme names the ambient background styling for a condition class.
type Theme string

const (
	ThemeClear        Theme = "clear"
	ThemeClouds       Theme = "clouds"
	ThemeRain         Theme = "rain"
	ThemeSnow         Theme = "snow"
	ThemeThunderstorm Theme = "thunderstorm"
	ThemeMist         Theme = "mist"
)

var themeByCondition = map[weather.Condition]Theme{
	weather.ConditionClear:        ThemeClear,
	weather.ConditionClouds:       ThemeClouds,
	weather.ConditionRain:         ThemeRain,
	weather.ConditionSnow:         ThemeSnow,
	weather.ConditionThunderstorm: ThemeThunderstorm,
	weather.ConditionMist:         ThemeMist,
}

// ThemeFor maps a condition class to its background theme.
// Unmapped classes fall back to the clear theme.
func ThemeFor(cond weather.Condition) Theme {
	if theme, ok := themeByCondition[cond]; ok {
		return theme
	}
	return ThemeClear
}
