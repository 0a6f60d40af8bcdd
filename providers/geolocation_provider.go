package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// IPGeolocationProvider resolves coordinates from the requester's public IP.
// It stands in for browser geolocation on the initial page load.
type IPGeolocationProvider struct {
	baseURL    string
	httpClient *http.Client
}

type ipGeolocationResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

func NewIPGeolocationProvider(cfg *config.WeatherConfig) *IPGeolocationProvider {
	return &IPGeolocationProvider{
		baseURL: cfg.GeolocationURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *IPGeolocationProvider) Locate(ctx context.Context) (*models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, errors.NewLocationError("build geolocation request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewLocationError("geolocation request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewLocationError(fmt.Sprintf("geolocation: HTTP %d error", resp.StatusCode), nil)
	}

	var apiResponse ipGeolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewLocationError("decode geolocation response", err)
	}

	if apiResponse.Status != "success" {
		return nil, errors.NewLocationError(fmt.Sprintf("geolocation lookup failed: %s", apiResponse.Message), nil)
	}

	return &models.Location{Lat: apiResponse.Lat, Lon: apiResponse.Lon}, nil
}
