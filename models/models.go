// Package models defines data structures used throughout the application
package models

import "time"

// Location is a pair of coordinates in floating point degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather is the most recent primary reading for the displayed place.
// It is replaced wholesale on every successful primary fetch.
type CurrentWeather struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	Humidity    float64   `json:"humidity"`    // percent
	WindSpeed   float64   `json:"wind_speed"`  // meters per second
	Condition   string    `json:"condition"`   // keyword, e.g. "Rain"
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	Coord       Location  `json:"coord"`
}

// AirPollution is the most recent air quality reading. AQI is the ordinal
// 1..5 scale; anything else is presented as unknown.
type AirPollution struct {
	AQI        int                `json:"aqi"`
	Components map[string]float64 `json:"components"`
}

// ForecastSample is one 3-hourly forecast entry.
type ForecastSample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// ForecastSeries is an ordered ~5 day series of 3-hourly samples.
type ForecastSeries struct {
	Samples []ForecastSample `json:"samples"`
}

// Advice holds the three derived lifestyle suggestions.
type Advice struct {
	Clothing string `json:"clothing"`
	Activity string `json:"activity"`
	Health   string `json:"health"`
}

// AQIPresentation is the display mapping for an AQI index.
type AQIPresentation struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Advice   string `json:"advice"`
}

// DayProgress describes the sun timeline between sunrise and sunset.
type DayProgress struct {
	Sunrise   time.Time `json:"sunrise"`
	Sunset    time.Time `json:"sunset"`
	DayLength string    `json:"day_length"`
	Progress  float64   `json:"progress"` // 0..100 percent of elapsed daylight
}

// SearchRequest is the payload for a user-triggered city search.
type SearchRequest struct {
	City string `json:"city" form:"city" binding:"required"`
}

// CoordsRequest is the payload for a browser-supplied geolocation refresh.
type CoordsRequest struct {
	Lat *float64 `json:"lat" form:"lat" binding:"required"`
	Lon *float64 `json:"lon" form:"lon" binding:"required"`
}

// DashboardView is the presentation snapshot served to clients. Region values
// and section reveal flags mirror what the page displays.
type DashboardView struct {
	Values    map[string]string `json:"values"`
	Revealed  map[string]bool   `json:"revealed"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
