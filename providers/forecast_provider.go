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

type OpenWeatherForecastProvider struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

func NewOpenWeatherForecastProvider(cfg *config.WeatherConfig) *OpenWeatherForecastProvider {
	return &OpenWeatherForecastProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.ForecastURL,
		units:   cfg.Units,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenWeatherForecastProvider) ByCoords(ctx context.Context, lat, lon float64) (*models.ForecastSeries, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))
	query.Set("appid", p.apiKey)
	query.Set("units", p.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build forecast request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("forecast API request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast: HTTP %d error", resp.StatusCode), nil)
	}

	var apiResponse forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewExternalAPIError("decode forecast response", err)
	}

	return p.convert(&apiResponse), nil
}

func (p *OpenWeatherForecastProvider) convert(apiResp *forecastResponse) *models.ForecastSeries {
	series := &models.ForecastSeries{
		Samples: make([]models.ForecastSample, 0, len(apiResp.List)),
	}

	for _, entry := range apiResp.List {
		sample := models.ForecastSample{
			Time:        time.Unix(entry.Dt, 0),
			Temperature: entry.Main.Temp,
		}
		if len(entry.Weather) > 0 {
			sample.Description = entry.Weather[0].Description
			sample.Icon = entry.Weather[0].Icon
		}
		series.Samples = append(series.Samples, sample)
	}

	return series
}
