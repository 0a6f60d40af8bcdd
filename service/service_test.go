package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdash.app/derive"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/presenter"
)

type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) CurrentByCity(ctx context.Context, city string) (*models.CurrentWeather, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrentWeather), args.Error(1)
}

func (m *MockWeatherProvider) CurrentByCoords(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrentWeather), args.Error(1)
}

type MockAirPollutionProvider struct {
	mock.Mock
}

func (m *MockAirPollutionProvider) ByCoords(ctx context.Context, lat, lon float64) (*models.AirPollution, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AirPollution), args.Error(1)
}

type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) ByCoords(ctx context.Context, lat, lon float64) (*models.ForecastSeries, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForecastSeries), args.Error(1)
}

type MockLocationProvider struct {
	mock.Mock
}

func (m *MockLocationProvider) Locate(ctx context.Context) (*models.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

// recordingPort captures every port call for assertions.
type recordingPort struct {
	mu       sync.Mutex
	values   map[presenter.Region]string
	revealed map[presenter.Section]bool
	loading  []bool
	errors   []string
}

func newRecordingPort() *recordingPort {
	return &recordingPort{
		values:   make(map[presenter.Region]string),
		revealed: make(map[presenter.Section]bool),
	}
}

func (p *recordingPort) SetValue(region presenter.Region, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[region] = value
}

func (p *recordingPort) Reveal(section presenter.Section) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revealed[section] = true
}

func (p *recordingPort) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = append(p.loading, loading)
}

func (p *recordingPort) NotifyError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, message)
}

func (p *recordingPort) value(region presenter.Region) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[region]
}

func (p *recordingPort) isRevealed(section presenter.Section) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revealed[section]
}

func (p *recordingPort) notifiedErrors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.errors...)
}

func (p *recordingPort) loadingSequence() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.loading...)
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)
}

func testReading() *models.CurrentWeather {
	return &models.CurrentWeather{
		City:        "Kyiv",
		Country:     "UA",
		Temperature: 21.4,
		Humidity:    55,
		WindSpeed:   4.2,
		Condition:   "Clouds",
		Description: "scattered clouds",
		Icon:        "03d",
		Sunrise:     time.Date(2025, time.June, 10, 5, 0, 0, 0, time.UTC),
		Sunset:      time.Date(2025, time.June, 10, 21, 0, 0, 0, time.UTC),
		Coord:       models.Location{Lat: 50.45, Lon: 30.52},
	}
}

func testForecastSeries() *models.ForecastSeries {
	base := time.Date(2025, time.June, 11, 12, 0, 0, 0, time.UTC)
	series := &models.ForecastSeries{}
	for i := 0; i < 3; i++ {
		series.Samples = append(series.Samples, models.ForecastSample{
			Time:        base.AddDate(0, 0, i),
			Temperature: 20 + float64(i),
			Description: "clear sky",
			Icon:        "01d",
		})
	}
	return series
}

func newTestService(
	weather *MockWeatherProvider,
	pollution *MockAirPollutionProvider,
	forecast *MockForecastProvider,
	location *MockLocationProvider,
	port presenter.Port,
) *DashboardService {
	return NewDashboardService(weather, pollution, forecast, location, port, metrics.NewFetchMetrics(), fixedNow)
}

func TestRefreshByCity_Success(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	location := new(MockLocationProvider)
	port := newRecordingPort()

	reading := testReading()
	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(reading, nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).Return(&models.AirPollution{AQI: 3}, nil)
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, location, port)
	err := svc.RefreshByCity(context.Background(), "Kyiv")
	require.NoError(t, err)
	svc.WaitForSecondaries()

	assert.Equal(t, "Kyiv, UA", port.value(presenter.RegionCityName))
	assert.Equal(t, "21", port.value(presenter.RegionTempValue))
	assert.Equal(t, "scattered clouds", port.value(presenter.RegionWeatherCondition))
	assert.Equal(t, "55%", port.value(presenter.RegionHumidity))
	assert.Equal(t, "15 km/h", port.value(presenter.RegionWindSpeed))
	assert.Equal(t, "cloudy", port.value(presenter.RegionBackground))

	assert.Equal(t, "05:00", port.value(presenter.RegionSunriseTime))
	assert.Equal(t, "21:00", port.value(presenter.RegionSunsetTime))
	assert.Equal(t, "16h 0m", port.value(presenter.RegionDayLength))
	assert.Equal(t, "59.4", port.value(presenter.RegionTimelineProgress))

	assert.Equal(t, "3", port.value(presenter.RegionAQIValue))
	assert.Equal(t, "Poor", port.value(presenter.RegionAQILabel))

	assert.Equal(t, "Wed", port.value(presenter.ForecastDayRegion(0, "day")))
	assert.Equal(t, "20°C", port.value(presenter.ForecastDayRegion(0, "temp")))

	assert.True(t, port.isRevealed(presenter.SectionHero))
	assert.True(t, port.isRevealed(presenter.SectionAQI))
	assert.True(t, port.isRevealed(presenter.SectionForecast))
	assert.True(t, port.isRevealed(presenter.SectionSun))
	assert.True(t, port.isRevealed(presenter.SectionSuggestions))

	assert.Empty(t, port.notifiedErrors())
	assert.Equal(t, []bool{true, false}, port.loadingSequence())
	assert.Equal(t, StateSuccess, svc.State())

	weather.AssertExpectations(t)
	pollution.AssertExpectations(t)
	forecast.AssertExpectations(t)
}

func TestRefreshByCity_Empty(t *testing.T) {
	svc := newTestService(new(MockWeatherProvider), new(MockAirPollutionProvider), new(MockForecastProvider), new(MockLocationProvider), newRecordingPort())

	err := svc.RefreshByCity(context.Background(), "")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ValidationError, appErr.Type)
}

func TestRefreshByCity_NotFound(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	weather.On("CurrentByCity", mock.Anything, "Atlantis").
		Return(nil, errors.NewNotFoundError("city not found"))

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	err := svc.RefreshByCity(context.Background(), "Atlantis")
	require.Error(t, err)
	svc.WaitForSecondaries()

	assert.Equal(t, []string{"City not found. Please enter a valid city name."}, port.notifiedErrors())
	assert.Equal(t, []bool{true, false}, port.loadingSequence())
	assert.False(t, port.isRevealed(presenter.SectionHero))

	// No secondary fetches after a failed primary.
	pollution.AssertNotCalled(t, "ByCoords", mock.Anything, mock.Anything, mock.Anything)
	forecast.AssertNotCalled(t, "ByCoords", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, StateFailed, svc.State())
}

func TestRefreshByCity_UpstreamError(t *testing.T) {
	weather := new(MockWeatherProvider)
	port := newRecordingPort()

	weather.On("CurrentByCity", mock.Anything, "Kyiv").
		Return(nil, errors.NewExternalAPIError("API returned status 503", nil))

	svc := newTestService(weather, new(MockAirPollutionProvider), new(MockForecastProvider), new(MockLocationProvider), port)
	err := svc.RefreshByCity(context.Background(), "Kyiv")
	require.Error(t, err)

	assert.Equal(t, []string{"An error occurred while fetching weather data. Please try again later."}, port.notifiedErrors())
}

func TestRefreshByCity_AirPollutionFailureContained(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).
		Return(nil, errors.NewExternalAPIError("API returned status 500", nil))
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	require.NoError(t, svc.RefreshByCity(context.Background(), "Kyiv"))
	svc.WaitForSecondaries()

	// The AQI section stays unpopulated, everything else renders.
	assert.False(t, port.isRevealed(presenter.SectionAQI))
	assert.Empty(t, port.value(presenter.RegionAQIValue))
	assert.True(t, port.isRevealed(presenter.SectionHero))
	assert.True(t, port.isRevealed(presenter.SectionForecast))
	assert.Empty(t, port.notifiedErrors())

	// Health advice falls back to the moderate default index.
	advice := derive.DeriveAdvice(21.4, "clouds", 55, 4.2, derive.DefaultAQI)
	assert.Equal(t, advice.Health, port.value(presenter.RegionHealth))
}

func TestRefreshByCity_ForecastFailureContained(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).Return(&models.AirPollution{AQI: 1}, nil)
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).
		Return(nil, errors.NewExternalAPIError("API returned status 500", nil))

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	require.NoError(t, svc.RefreshByCity(context.Background(), "Kyiv"))
	svc.WaitForSecondaries()

	assert.False(t, port.isRevealed(presenter.SectionForecast))
	assert.True(t, port.isRevealed(presenter.SectionAQI))
	assert.Empty(t, port.notifiedErrors())
}

func TestRefreshByCity_PollutionUpdatesSuggestions(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).Return(&models.AirPollution{AQI: 5}, nil)
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	require.NoError(t, svc.RefreshByCity(context.Background(), "Kyiv"))
	svc.WaitForSecondaries()

	advice := derive.DeriveAdvice(21.4, "clouds", 55, 4.2, 5)
	assert.Equal(t, advice.Health, port.value(presenter.RegionHealth))
	assert.Equal(t, "Hazardous", port.value(presenter.RegionAQILabel))
}

func TestRefreshByLocation_Success(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	location := new(MockLocationProvider)
	port := newRecordingPort()

	location.On("Locate", mock.Anything).Return(&models.Location{Lat: 50.45, Lon: 30.52}, nil)
	weather.On("CurrentByCoords", mock.Anything, 50.45, 30.52).Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).Return(&models.AirPollution{AQI: 2}, nil)
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, location, port)
	require.NoError(t, svc.RefreshByLocation(context.Background()))
	svc.WaitForSecondaries()

	assert.Equal(t, "Kyiv, UA", port.value(presenter.RegionCityName))
	location.AssertExpectations(t)
}

func TestRefreshByLocation_SilentFailure(t *testing.T) {
	weather := new(MockWeatherProvider)
	location := new(MockLocationProvider)
	port := newRecordingPort()

	location.On("Locate", mock.Anything).Return(nil, errors.NewLocationError("geolocation lookup failed", nil))

	svc := newTestService(weather, new(MockAirPollutionProvider), new(MockForecastProvider), location, port)
	err := svc.RefreshByLocation(context.Background())
	require.NoError(t, err)

	assert.Empty(t, port.notifiedErrors())
	assert.Equal(t, []bool{true, false}, port.loadingSequence())
	assert.Equal(t, StateIdle, svc.State())
	weather.AssertNotCalled(t, "CurrentByCoords", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshByCoords_Success(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	weather.On("CurrentByCoords", mock.Anything, 50.45, 30.52).Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, 50.45, 30.52).Return(&models.AirPollution{AQI: 2}, nil)
	forecast.On("ByCoords", mock.Anything, 50.45, 30.52).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	require.NoError(t, svc.RefreshByCoords(context.Background(), 50.45, 30.52))
	svc.WaitForSecondaries()

	assert.Equal(t, "Kyiv, UA", port.value(presenter.RegionCityName))
}

func TestCurrentReading_CopiesState(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)

	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(testReading(), nil)
	pollution.On("ByCoords", mock.Anything, mock.Anything, mock.Anything).Return(&models.AirPollution{AQI: 2}, nil)
	forecast.On("ByCoords", mock.Anything, mock.Anything, mock.Anything).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), newRecordingPort())
	assert.Nil(t, svc.CurrentReading())

	require.NoError(t, svc.RefreshByCity(context.Background(), "Kyiv"))
	svc.WaitForSecondaries()

	reading := svc.CurrentReading()
	require.NotNil(t, reading)
	reading.City = "mutated"
	assert.Equal(t, "Kyiv", svc.CurrentReading().City)
}

func TestLastRefreshWins(t *testing.T) {
	weather := new(MockWeatherProvider)
	pollution := new(MockAirPollutionProvider)
	forecast := new(MockForecastProvider)
	port := newRecordingPort()

	first := testReading()
	second := testReading()
	second.City = "Lviv"
	second.Coord = models.Location{Lat: 49.84, Lon: 24.03}

	weather.On("CurrentByCity", mock.Anything, "Kyiv").Return(first, nil)
	weather.On("CurrentByCity", mock.Anything, "Lviv").Return(second, nil)
	pollution.On("ByCoords", mock.Anything, mock.Anything, mock.Anything).Return(&models.AirPollution{AQI: 2}, nil)
	forecast.On("ByCoords", mock.Anything, mock.Anything, mock.Anything).Return(testForecastSeries(), nil)

	svc := newTestService(weather, pollution, forecast, new(MockLocationProvider), port)
	require.NoError(t, svc.RefreshByCity(context.Background(), "Kyiv"))
	require.NoError(t, svc.RefreshByCity(context.Background(), "Lviv"))
	svc.WaitForSecondaries()

	assert.Equal(t, "Lviv, UA", port.value(presenter.RegionCityName))
	assert.Equal(t, "Lviv", svc.CurrentReading().City)
}
