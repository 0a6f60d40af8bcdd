// Package app assembles the dashboard application from its parts.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"weatherdash.app/api"
	"weatherdash.app/config"
	"weatherdash.app/metrics"
	"weatherdash.app/presenter"
	"weatherdash.app/providers"
	"weatherdash.app/providers/cache"
	"weatherdash.app/scheduler"
	"weatherdash.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config      *config.Config
	server      *api.Server
	scheduler   *scheduler.ThemeScheduler
	dashboard   *service.DashboardService
	memoryCache *cache.MemoryCache
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	weatherProvider, forecastProvider, err := app.createProviders()
	if err != nil {
		return fmt.Errorf("create providers: %w", err)
	}

	pollutionProvider := providers.NewOpenWeatherAirPollutionProvider(&app.config.Weather)
	locationProvider := providers.NewIPGeolocationProvider(&app.config.Weather)

	view := presenter.NewViewPresenter(presenter.AfterFuncSchedule)

	app.dashboard = service.NewDashboardService(
		weatherProvider,
		pollutionProvider,
		forecastProvider,
		locationProvider,
		view,
		metrics.NewFetchMetrics(),
		nil,
	)

	app.server = api.NewServer(app.config, app.dashboard, view)
	app.scheduler = scheduler.NewThemeScheduler(
		view,
		time.Duration(app.config.Scheduler.ThemeIntervalMinutes)*time.Minute,
		nil,
	)

	slog.Info("Services initialized successfully")
	return nil
}

// createProviders builds the primary and forecast providers with their cache
// proxies and logging decoration.
func (app *Application) createProviders() (providers.WeatherProvider, providers.ForecastProvider, error) {
	slog.Debug("Creating data providers...", "cache", app.config.Cache.Type)

	responseCache, err := app.createCache()
	if err != nil {
		return nil, nil, err
	}
	cacheTTL := time.Duration(app.config.Cache.TTLMinutes) * time.Minute
	cacheMetrics := metrics.NewCacheMetrics(app.config.Cache.Type)

	var weatherProvider providers.WeatherProvider = providers.NewOpenWeatherMapProvider(&app.config.Weather)
	weatherProvider = providers.NewWeatherLoggingDecorator(weatherProvider, "openweathermap")
	weatherProvider = providers.NewWeatherCacheProxy(weatherProvider, responseCache, cacheTTL, cacheMetrics)

	var forecastProvider providers.ForecastProvider = providers.NewOpenWeatherForecastProvider(&app.config.Weather)
	forecastProvider = providers.NewForecastCacheProxy(forecastProvider, responseCache, cacheTTL, cacheMetrics)

	return weatherProvider, forecastProvider, nil
}

func (app *Application) createCache() (providers.Cache, error) {
	switch app.config.Cache.Type {
	case "redis":
		return cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  time.Duration(app.config.Cache.DialTimeoutSecs) * time.Second,
			ReadTimeout:  time.Duration(app.config.Cache.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(app.config.Cache.WriteTimeoutSecs) * time.Second,
		})
	default:
		app.memoryCache = cache.NewMemoryCache()
		return app.memoryCache, nil
	}
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting theme scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.dashboard != nil {
		app.dashboard.WaitForSecondaries()
	}
	if app.memoryCache != nil {
		app.memoryCache.Stop()
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
