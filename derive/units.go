// Package derive implements the pure derivation pipeline that turns raw
// weather and air quality readings into display values and lifestyle advice.
// Nothing in this package performs I/O or holds state.
package derive

import (
	"fmt"
	"math"
	"strings"
)

const (
	ThemeDay   = "day"
	ThemeNight = "night"
)

// KmhFromMs converts a wind speed in meters per second to kilometers per hour.
func KmhFromMs(ms float64) float64 {
	return ms * 3.6
}

// RoundKmh converts a wind speed in m/s to a rounded km/h display value.
func RoundKmh(ms float64) int {
	return int(math.Round(KmhFromMs(ms)))
}

// RoundTemp rounds a Celsius temperature to a whole display degree.
func RoundTemp(c float64) int {
	return int(math.Round(c))
}

// NormalizeCondition lowercases and trims a condition keyword so the advice
// branches can rely on substring checks against defined input.
func NormalizeCondition(condition string) string {
	return strings.ToLower(strings.TrimSpace(condition))
}

// ThemeForHour buckets a wall-clock hour into the day or night visual theme.
func ThemeForHour(hour int) string {
	if hour >= 6 && hour < 18 {
		return ThemeDay
	}
	return ThemeNight
}

// BackgroundForCondition buckets a lowercased condition keyword into the
// visual background class, or "" when no themed background applies.
func BackgroundForCondition(condition string) string {
	switch {
	case strings.Contains(condition, "clear"):
		return "sunny"
	case strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle"):
		return "rainy"
	case strings.Contains(condition, "snow"):
		return "snowy"
	case strings.Contains(condition, "cloud"):
		return "cloudy"
	case strings.Contains(condition, "thunderstorm"):
		return "thunderstorm"
	default:
		return ""
	}
}

// IconURL builds the OpenWeatherMap icon image URL for an icon code.
func IconURL(code string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", code)
}

// WeekdayLabel returns the short day name used in forecast slots.
func WeekdayLabel(weekday int) string {
	names := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
