package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"weatherdash.app/metrics"
	"weatherdash.app/models"
)

// WeatherCacheProxy serves repeated primary lookups from the response cache.
type WeatherCacheProxy struct {
	realProvider WeatherProvider
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.CacheMetrics
}

func NewWeatherCacheProxy(realProvider WeatherProvider, cache Cache, cacheTTL time.Duration, cacheMetrics *metrics.CacheMetrics) WeatherProvider {
	return &WeatherCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      cacheMetrics,
	}
}

func (p *WeatherCacheProxy) CurrentByCity(ctx context.Context, city string) (*models.CurrentWeather, error) {
	key := fmt.Sprintf("weather:city:%s", city)
	return p.lookup(ctx, key, func() (*models.CurrentWeather, error) {
		return p.realProvider.CurrentByCity(ctx, city)
	})
}

func (p *WeatherCacheProxy) CurrentByCoords(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	key := fmt.Sprintf("weather:coords:%.4f:%.4f", lat, lon)
	return p.lookup(ctx, key, func() (*models.CurrentWeather, error) {
		return p.realProvider.CurrentByCoords(ctx, lat, lon)
	})
}

func (p *WeatherCacheProxy) lookup(ctx context.Context, key string, fetch func() (*models.CurrentWeather, error)) (*models.CurrentWeather, error) {
	if data, found := p.cache.Get(ctx, key); found {
		var cached models.CurrentWeather
		if err := json.Unmarshal(data, &cached); err == nil {
			slog.Info("cache hit", "key", key)
			p.metrics.RecordHit()
			return &cached, nil
		}
	}

	slog.Info("cache miss", "key", key)
	p.metrics.RecordMiss()

	response, err := fetch()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(response); err == nil {
		p.cache.Set(ctx, key, data, p.cacheTTL)
	}

	return response, nil
}

// ForecastCacheProxy serves repeated forecast lookups from the response cache.
type ForecastCacheProxy struct {
	realProvider ForecastProvider
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.CacheMetrics
}

func NewForecastCacheProxy(realProvider ForecastProvider, cache Cache, cacheTTL time.Duration, cacheMetrics *metrics.CacheMetrics) ForecastProvider {
	return &ForecastCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      cacheMetrics,
	}
}

func (p *ForecastCacheProxy) ByCoords(ctx context.Context, lat, lon float64) (*models.ForecastSeries, error) {
	key := fmt.Sprintf("forecast:coords:%.4f:%.4f", lat, lon)

	if data, found := p.cache.Get(ctx, key); found {
		var cached models.ForecastSeries
		if err := json.Unmarshal(data, &cached); err == nil {
			slog.Info("cache hit", "key", key)
			p.metrics.RecordHit()
			return &cached, nil
		}
	}

	slog.Info("cache miss", "key", key)
	p.metrics.RecordMiss()

	response, err := p.realProvider.ByCoords(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(response); err == nil {
		p.cache.Set(ctx, key, data, p.cacheTTL)
	}

	return response, nil
}
