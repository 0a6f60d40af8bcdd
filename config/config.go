package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the OpenWeatherMap data providers
type WeatherConfig struct {
	APIKey          string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL         string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	AirPollutionURL string `envconfig:"AIR_POLLUTION_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5/air_pollution"`
	ForecastURL     string `envconfig:"FORECAST_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5/forecast"`
	GeolocationURL  string `envconfig:"GEOLOCATION_API_BASE_URL" default:"http://ip-api.com/json"`
	Units           string `envconfig:"WEATHER_UNITS" default:"metric"`
	TimeoutSeconds  int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
}

// CacheConfig contains provider response cache settings
type CacheConfig struct {
	Type              string `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes        int    `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeoutSecs   int    `envconfig:"REDIS_DIAL_TIMEOUT_SECONDS" default:"5"`
	ReadTimeoutSecs   int    `envconfig:"REDIS_READ_TIMEOUT_SECONDS" default:"3"`
	WriteTimeoutSecs  int    `envconfig:"REDIS_WRITE_TIMEOUT_SECONDS" default:"3"`
}

// SchedulerConfig contains settings for the background theme timer
type SchedulerConfig struct {
	ThemeIntervalMinutes int `envconfig:"THEME_INTERVAL_MINUTES" default:"5"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	for name, url := range map[string]string{
		"WEATHER_API_BASE_URL":       w.BaseURL,
		"AIR_POLLUTION_API_BASE_URL": w.AirPollutionURL,
		"FORECAST_API_BASE_URL":      w.ForecastURL,
		"GEOLOCATION_API_BASE_URL":   w.GeolocationURL,
	} {
		if url == "" {
			return errors.NewConfigurationError(fmt.Sprintf("%s cannot be empty", name), nil)
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
		}
	}
	if w.Units != "metric" && w.Units != "imperial" && w.Units != "standard" {
		return errors.NewConfigurationError("WEATHER_UNITS must be one of: metric, imperial, standard", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when CACHE_TYPE is 'redis'", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.ThemeIntervalMinutes < 1 {
		return errors.NewConfigurationError("THEME_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	if s.ThemeIntervalMinutes > 1440 {
		return errors.NewConfigurationError("THEME_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
