// Package presenter defines the presentation port the dashboard core renders
// through, plus an in-memory view implementation served over HTTP.
package presenter

import (
	"fmt"
	"time"
)

// Region identifies a display slot accepting a single string value.
type Region string

const (
	RegionCityName         Region = "city-name"
	RegionDate             Region = "date"
	RegionTempValue        Region = "temp-value"
	RegionWeatherCondition Region = "weather-condition"
	RegionWeatherIcon      Region = "weather-icon"
	RegionHumidity         Region = "humidity"
	RegionWindSpeed        Region = "wind-speed"
	RegionAQIValue         Region = "aqi-value"
	RegionAQILabel         Region = "aqi-label"
	RegionAQISeverity      Region = "aqi-severity"
	RegionAQIAdvice        Region = "aqi-advice"
	RegionSunriseTime      Region = "sunrise-time"
	RegionSunsetTime       Region = "sunset-time"
	RegionDayLength        Region = "day-length"
	RegionTimelineProgress Region = "timeline-progress"
	RegionClothing         Region = "clothing-suggestion"
	RegionActivity         Region = "activity-suggestion"
	RegionHealth           Region = "health-suggestion"
	RegionTheme            Region = "theme"
	RegionBackground       Region = "background"
)

// Section identifies a reveal-animated group of regions.
type Section string

const (
	SectionHero        Section = "hero"
	SectionAQI         Section = "aqi"
	SectionForecast    Section = "forecast"
	SectionSun         Section = "sun"
	SectionSuggestions Section = "suggestions"
)

// Reveal delays copied from the page animation timings.
var revealDelays = map[Section]time.Duration{
	SectionHero:        0,
	SectionAQI:         500 * time.Millisecond,
	SectionForecast:    700 * time.Millisecond,
	SectionSun:         900 * time.Millisecond,
	SectionSuggestions: 1100 * time.Millisecond,
}

// ForecastDayRegion returns the region for one field of a forecast slot.
// slot is zero-based; field is one of "day", "temp", "icon".
func ForecastDayRegion(slot int, field string) Region {
	return Region(fmt.Sprintf("forecast-day-%d-%s", slot+1, field))
}

// Port is the capability set the orchestrator renders through. Implementations
// must be safe for concurrent use: secondary fetch completions call in from
// their own goroutines.
type Port interface {
	SetValue(region Region, value string)
	Reveal(section Section)
	SetLoading(loading bool)
	NotifyError(message string)
}
