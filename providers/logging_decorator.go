package providers

import (
	"context"
	"log/slog"
	"time"

	"weatherdash.app/models"
)

// WeatherLoggingDecorator wraps a weather provider with structured request
// and response logging.
type WeatherLoggingDecorator struct {
	provider WeatherProvider
	name     string
}

func NewWeatherLoggingDecorator(provider WeatherProvider, name string) WeatherProvider {
	return &WeatherLoggingDecorator{
		provider: provider,
		name:     name,
	}
}

func (d *WeatherLoggingDecorator) CurrentByCity(ctx context.Context, city string) (*models.CurrentWeather, error) {
	slog.Info("weather request started", "provider", d.name, "city", city)
	start := time.Now()

	weather, err := d.provider.CurrentByCity(ctx, city)
	duration := time.Since(start)

	if err != nil {
		slog.Error("weather request failed",
			"provider", d.name, "city", city,
			"duration_ms", duration.Milliseconds(), "error", err)
		return nil, err
	}

	slog.Info("weather request completed",
		"provider", d.name, "city", weather.City,
		"duration_ms", duration.Milliseconds(),
		"temperature", weather.Temperature, "condition", weather.Condition)
	return weather, nil
}

func (d *WeatherLoggingDecorator) CurrentByCoords(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	slog.Info("weather request started", "provider", d.name, "lat", lat, "lon", lon)
	start := time.Now()

	weather, err := d.provider.CurrentByCoords(ctx, lat, lon)
	duration := time.Since(start)

	if err != nil {
		slog.Error("weather request failed",
			"provider", d.name, "lat", lat, "lon", lon,
			"duration_ms", duration.Milliseconds(), "error", err)
		return nil, err
	}

	slog.Info("weather request completed",
		"provider", d.name, "city", weather.City,
		"duration_ms", duration.Milliseconds(),
		"temperature", weather.Temperature, "condition", weather.Condition)
	return weather, nil
}
