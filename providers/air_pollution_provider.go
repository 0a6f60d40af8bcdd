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

type OpenWeatherAirPollutionProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

func NewOpenWeatherAirPollutionProvider(cfg *config.WeatherConfig) *OpenWeatherAirPollutionProvider {
	return &OpenWeatherAirPollutionProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.AirPollutionURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenWeatherAirPollutionProvider) ByCoords(ctx context.Context, lat, lon float64) (*models.AirPollution, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))
	query.Set("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build air pollution request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("air pollution API request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("air pollution: HTTP %d error", resp.StatusCode), nil)
	}

	var apiResponse airPollutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode air pollution response", err)
	}

	if len(apiResponse.List) == 0 {
		return nil, errors.NewExternalAPIError("air pollution response contained no readings", nil)
	}

	return &models.AirPollution{
		AQI:        apiResponse.List[0].Main.AQI,
		Components: apiResponse.List[0].Components,
	}, nil
}
