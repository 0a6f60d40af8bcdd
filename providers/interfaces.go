package providers

import (
	"context"

	"weatherdash.app/models"
	"weatherdash.app/providers/cache"
)

// WeatherProvider fetches the primary current-weather reading. Name-based
// lookups resolve coordinates through the response, which the orchestrator
// reuses for the secondary fetches.
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (*models.CurrentWeather, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error)
}

// AirPollutionProvider fetches the current air quality reading.
type AirPollutionProvider interface {
	ByCoords(ctx context.Context, lat, lon float64) (*models.AirPollution, error)
}

// ForecastProvider fetches the ~5 day, 3-hourly forecast series.
type ForecastProvider interface {
	ByCoords(ctx context.Context, lat, lon float64) (*models.ForecastSeries, error)
}

// LocationProvider resolves the requester's coordinates. A failure here is
// the silent best-effort case: the dashboard just stays empty.
type LocationProvider interface {
	Locate(ctx context.Context) (*models.Location, error)
}

// Cache is an alias to avoid circular imports
type Cache = cache.GenericCache
