// Package service implements the fetch orchestrator that drives the
// dashboard: resolve a location, fetch the primary reading, fan out the
// secondary fetches, and push derived values through the presentation port.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"weatherdash.app/derive"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/presenter"
	"weatherdash.app/providers"
)

// State labels the orchestrator's position in its fetch cycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// User-facing messages for terminal primary-fetch failures.
const (
	msgCityNotFound   = "City not found. Please enter a valid city name."
	msgGenericFailure = "An error occurred while fetching weather data. Please try again later."
)

// DashboardServiceInterface defines the refresh operations exposed over HTTP.
type DashboardServiceInterface interface {
	RefreshByLocation(ctx context.Context) error
	RefreshByCity(ctx context.Context, city string) error
	RefreshByCoords(ctx context.Context, lat, lon float64) error
}

// DashboardService owns the single current reading per data category and is
// the only writer to the presentation port. A new cycle does not cancel an
// in-flight one; whichever completes last wins. The state moves
// Idle -> Loading -> Success or Failed; a geolocation miss returns it to Idle.
type DashboardService struct {
	weather   providers.WeatherProvider
	pollution providers.AirPollutionProvider
	forecast  providers.ForecastProvider
	location  providers.LocationProvider
	port      presenter.Port
	metrics   *metrics.FetchMetrics
	now       func() time.Time

	mu      sync.Mutex
	state   State
	current *models.CurrentWeather
	air     *models.AirPollution
	series  *models.ForecastSeries

	// secondary tracks in-flight secondary fetches so tests can join them.
	secondary sync.WaitGroup
}

// NewDashboardService creates the orchestrator. now may be nil for wall-clock time.
func NewDashboardService(
	weather providers.WeatherProvider,
	pollution providers.AirPollutionProvider,
	forecast providers.ForecastProvider,
	location providers.LocationProvider,
	port presenter.Port,
	fetchMetrics *metrics.FetchMetrics,
	now func() time.Time,
) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		weather:   weather,
		pollution: pollution,
		forecast:  forecast,
		location:  location,
		port:      port,
		metrics:   fetchMetrics,
		now:       now,
		state:     StateIdle,
	}
}

// State returns the orchestrator's current cycle state.
func (s *DashboardService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentReading returns the most recent primary reading, or nil before the
// first successful fetch.
func (s *DashboardService) CurrentReading() *models.CurrentWeather {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	reading := *s.current
	return &reading
}

// WaitForSecondaries blocks until launched secondary fetches complete.
// Intended for tests and shutdown; normal operation never waits.
func (s *DashboardService) WaitForSecondaries() {
	s.secondary.Wait()
}

// RefreshByLocation resolves coordinates through the geolocation provider and
// runs a full fetch cycle. Geolocation failure ends the cycle silently: the
// loading indicator is hidden and no user-visible error is raised.
func (s *DashboardService) RefreshByLocation(ctx context.Context) error {
	cycleID := uuid.New().String()
	s.setState(StateLoading)
	s.port.SetLoading(true)

	start := s.now()
	location, err := s.location.Locate(ctx)
	s.metrics.RecordFetch(metrics.SourceGeolocation, outcome(err), time.Since(start).Seconds())
	if err != nil {
		slog.Info("geolocation unavailable, skipping initial fetch", "cycle", cycleID, "error", err)
		s.port.SetLoading(false)
		s.setState(StateIdle)
		return nil
	}

	return s.runCycle(ctx, cycleID, func(ctx context.Context) (*models.CurrentWeather, error) {
		return s.weather.CurrentByCoords(ctx, location.Lat, location.Lon)
	})
}

// RefreshByCity runs a fetch cycle for a user-entered place name.
func (s *DashboardService) RefreshByCity(ctx context.Context, city string) error {
	if city == "" {
		return errors.NewValidationError("city cannot be empty")
	}

	cycleID := uuid.New().String()
	s.setState(StateLoading)
	s.port.SetLoading(true)

	return s.runCycle(ctx, cycleID, func(ctx context.Context) (*models.CurrentWeather, error) {
		return s.weather.CurrentByCity(ctx, city)
	})
}

// RefreshByCoords runs a fetch cycle for browser-supplied coordinates.
func (s *DashboardService) RefreshByCoords(ctx context.Context, lat, lon float64) error {
	cycleID := uuid.New().String()
	s.setState(StateLoading)
	s.port.SetLoading(true)

	return s.runCycle(ctx, cycleID, func(ctx context.Context) (*models.CurrentWeather, error) {
		return s.weather.CurrentByCoords(ctx, lat, lon)
	})
}

type primaryFetch func(ctx context.Context) (*models.CurrentWeather, error)

func (s *DashboardService) runCycle(ctx context.Context, cycleID string, primary primaryFetch) error {
	start := s.now()
	reading, err := primary(ctx)
	s.metrics.RecordFetch(metrics.SourceWeather, outcome(err), time.Since(start).Seconds())

	if err != nil {
		slog.Error("primary weather fetch failed", "cycle", cycleID, "error", err)
		s.port.SetLoading(false)
		s.port.NotifyError(userMessage(err))
		s.setState(StateFailed)
		return err
	}

	s.mu.Lock()
	s.current = reading
	s.mu.Unlock()

	s.renderCurrent(reading)
	s.renderTimeline(reading)
	s.renderSuggestions()
	s.port.SetLoading(false)
	s.setState(StateSuccess)

	// Secondary fetches reuse the coordinates resolved by the primary
	// response, so name-based lookups fan out correctly. They outlive the
	// request context: a finished cycle must not cancel them.
	detached := context.WithoutCancel(ctx)
	s.secondary.Add(2)
	go s.fetchAirPollution(detached, cycleID, reading.Coord)
	go s.fetchForecast(detached, cycleID, reading.Coord)

	return nil
}

// fetchAirPollution is contained: a failure is logged, the AQI section stays
// unpopulated, and nothing else in the cycle is affected.
func (s *DashboardService) fetchAirPollution(ctx context.Context, cycleID string, coord models.Location) {
	defer s.secondary.Done()

	start := s.now()
	reading, err := s.pollution.ByCoords(ctx, coord.Lat, coord.Lon)
	s.metrics.RecordFetch(metrics.SourceAirPollution, outcome(err), time.Since(start).Seconds())
	if err != nil {
		slog.Warn("air pollution fetch failed", "cycle", cycleID, "error", err)
		return
	}

	s.mu.Lock()
	s.air = reading
	s.mu.Unlock()

	s.renderAQI(reading)
	s.renderSuggestions()
}

// fetchForecast is contained the same way as fetchAirPollution.
func (s *DashboardService) fetchForecast(ctx context.Context, cycleID string, coord models.Location) {
	defer s.secondary.Done()

	start := s.now()
	series, err := s.forecast.ByCoords(ctx, coord.Lat, coord.Lon)
	s.metrics.RecordFetch(metrics.SourceForecast, outcome(err), time.Since(start).Seconds())
	if err != nil {
		slog.Warn("forecast fetch failed", "cycle", cycleID, "error", err)
		return
	}

	s.mu.Lock()
	s.series = series
	s.mu.Unlock()

	s.renderForecast(series)
}

func (s *DashboardService) renderCurrent(reading *models.CurrentWeather) {
	s.port.SetValue(presenter.RegionCityName, fmt.Sprintf("%s, %s", reading.City, reading.Country))
	s.port.SetValue(presenter.RegionDate, s.now().Format("Monday, January 2, 2006"))
	s.port.SetValue(presenter.RegionTempValue, strconv.Itoa(derive.RoundTemp(reading.Temperature)))
	s.port.SetValue(presenter.RegionWeatherCondition, reading.Description)
	s.port.SetValue(presenter.RegionHumidity, fmt.Sprintf("%.0f%%", reading.Humidity))
	s.port.SetValue(presenter.RegionWindSpeed, fmt.Sprintf("%d km/h", derive.RoundKmh(reading.WindSpeed)))
	s.port.SetValue(presenter.RegionWeatherIcon, derive.IconURL(reading.Icon))
	s.port.SetValue(presenter.RegionBackground, derive.BackgroundForCondition(derive.NormalizeCondition(reading.Condition)))
	s.port.Reveal(presenter.SectionHero)
}

func (s *DashboardService) renderTimeline(reading *models.CurrentWeather) {
	progress := derive.ComputeDayProgress(reading.Sunrise, reading.Sunset, s.now())
	s.port.SetValue(presenter.RegionSunriseTime, derive.ClockLabel(progress.Sunrise))
	s.port.SetValue(presenter.RegionSunsetTime, derive.ClockLabel(progress.Sunset))
	s.port.SetValue(presenter.RegionDayLength, progress.DayLength)
	s.port.SetValue(presenter.RegionTimelineProgress, strconv.FormatFloat(progress.Progress, 'f', 1, 64))
	s.port.Reveal(presenter.SectionSun)
}

func (s *DashboardService) renderAQI(reading *models.AirPollution) {
	presentation := derive.PresentAQI(reading.AQI)
	s.port.SetValue(presenter.RegionAQIValue, strconv.Itoa(reading.AQI))
	s.port.SetValue(presenter.RegionAQILabel, presentation.Label)
	s.port.SetValue(presenter.RegionAQISeverity, presentation.Severity)
	s.port.SetValue(presenter.RegionAQIAdvice, presentation.Advice)
	s.port.Reveal(presenter.SectionAQI)
}

// renderSuggestions recomputes advice from whatever is currently available.
// The AQI defaults to moderate until an air pollution reading arrives.
func (s *DashboardService) renderSuggestions() {
	s.mu.Lock()
	current := s.current
	air := s.air
	s.mu.Unlock()

	if current == nil {
		return
	}

	aqi := derive.DefaultAQI
	if air != nil {
		aqi = air.AQI
	}

	advice := derive.DeriveAdvice(
		current.Temperature,
		derive.NormalizeCondition(current.Condition),
		current.Humidity,
		current.WindSpeed,
		aqi,
	)

	s.port.SetValue(presenter.RegionClothing, advice.Clothing)
	s.port.SetValue(presenter.RegionActivity, advice.Activity)
	s.port.SetValue(presenter.RegionHealth, advice.Health)
	s.port.Reveal(presenter.SectionSuggestions)
}

func (s *DashboardService) renderForecast(series *models.ForecastSeries) {
	samples := derive.SelectDailySamples(series.Samples, s.now(), derive.ForecastDays)

	// Days without data leave their slot unrendered.
	for i, sample := range samples {
		s.port.SetValue(presenter.ForecastDayRegion(i, "day"), derive.WeekdayLabel(int(sample.Time.Weekday())))
		s.port.SetValue(presenter.ForecastDayRegion(i, "temp"), fmt.Sprintf("%d°C", derive.RoundTemp(sample.Temperature)))
		s.port.SetValue(presenter.ForecastDayRegion(i, "icon"), derive.IconURL(sample.Icon))
	}
	s.port.Reveal(presenter.SectionForecast)
}

func (s *DashboardService) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func outcome(err error) string {
	if err != nil {
		return metrics.OutcomeFailure
	}
	return metrics.OutcomeSuccess
}

func userMessage(err error) string {
	if errors.IsNotFound(err) {
		return msgCityNotFound
	}
	return msgGenericFailure
}
