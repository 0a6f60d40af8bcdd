// Package providers implements the OpenWeatherMap data providers and the
// IP geolocation provider, plus their caching and logging decorators.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

type openWeatherMapResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Message string `json:"message,omitempty"`
}

func NewOpenWeatherMapProvider(cfg *config.WeatherConfig) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		units:   cfg.Units,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenWeatherMapProvider) CurrentByCity(ctx context.Context, city string) (*models.CurrentWeather, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	query := url.Values{}
	query.Set("q", city)
	return p.fetch(ctx, query)
}

func (p *OpenWeatherMapProvider) CurrentByCoords(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))
	return p.fetch(ctx, query)
}

func (p *OpenWeatherMapProvider) fetch(ctx context.Context, query url.Values) (*models.CurrentWeather, error) {
	query.Set("appid", p.apiKey)
	query.Set("units", p.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build openweathermap request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("openweathermap API request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var apiResponse openWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode openweathermap response", err)
	}

	return p.convert(&apiResponse), nil
}

func (p *OpenWeatherMapProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return errors.NewNotFoundError("city not found")
	case http.StatusUnauthorized:
		return errors.NewExternalAPIError("openweathermap: invalid API key", nil)
	case http.StatusTooManyRequests:
		return errors.NewExternalAPIError("openweathermap: rate limit exceeded", nil)
	case http.StatusServiceUnavailable:
		return errors.NewExternalAPIError("openweathermap: service unavailable", nil)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", statusCode), nil)
	}
}

func (p *OpenWeatherMapProvider) convert(apiResp *openWeatherMapResponse) *models.CurrentWeather {
	condition := "Unknown"
	description := "No description"
	icon := ""
	if len(apiResp.Weather) > 0 {
		condition = apiResp.Weather[0].Main
		description = apiResp.Weather[0].Description
		icon = apiResp.Weather[0].Icon
	}

	return &models.CurrentWeather{
		City:        apiResp.Name,
		Country:     apiResp.Sys.Country,
		Temperature: apiResp.Main.Temp,
		Humidity:    apiResp.Main.Humidity,
		WindSpeed:   apiResp.Wind.Speed,
		Condition:   condition,
		Description: description,
		Icon:        icon,
		Sunrise:     time.Unix(apiResp.Sys.Sunrise, 0),
		Sunset:      time.Unix(apiResp.Sys.Sunset, 0),
		Coord: models.Location{
			Lat: apiResp.Coord.Lat,
			Lon: apiResp.Coord.Lon,
		},
	}
}
