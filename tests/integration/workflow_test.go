package integration

import (
	"encoding/json"
	"net/http"

	"weatherdash.app/models"
)

func (s *IntegrationTestSuite) decodeView(body []byte) models.DashboardView {
	var view models.DashboardView
	s.Require().NoError(json.Unmarshal(body, &view))
	return view
}

func (s *IntegrationTestSuite) TestSearchPopulatesDashboard() {
	w := s.searchAndSettle("Kyiv")
	s.Equal(http.StatusOK, w.Code)

	w = s.get("/api/dashboard")
	s.Equal(http.StatusOK, w.Code)
	view := s.decodeView(w.Body.Bytes())

	s.Equal("Kyiv, UA", view.Values["city-name"])
	s.Equal("21", view.Values["temp-value"])
	s.Equal("scattered clouds", view.Values["weather-condition"])
	s.Equal("55%", view.Values["humidity"])
	s.Equal("15 km/h", view.Values["wind-speed"])
	s.Equal("cloudy", view.Values["background"])

	s.Equal("3", view.Values["aqi-value"])
	s.Equal("Poor", view.Values["aqi-label"])
	s.Equal("poor", view.Values["aqi-severity"])

	s.Equal("20°C", view.Values["forecast-day-1-temp"])
	s.NotEmpty(view.Values["forecast-day-1-day"])
	s.Contains(view.Values["forecast-day-1-icon"], "01d")

	s.NotEmpty(view.Values["sunrise-time"])
	s.NotEmpty(view.Values["sunset-time"])
	s.Equal("12h 0m", view.Values["day-length"])

	s.NotEmpty(view.Values["clothing-suggestion"])
	s.NotEmpty(view.Values["activity-suggestion"])
	s.NotEmpty(view.Values["health-suggestion"])

	for _, section := range []string{"hero", "aqi", "forecast", "sun", "suggestions"} {
		s.True(view.Revealed[section], "section %s should be revealed", section)
	}
	s.False(view.Loading)
	s.Empty(view.Error)
}

func (s *IntegrationTestSuite) TestSearchUnknownCity() {
	s.weatherUpstream.status.Store(http.StatusNotFound)

	w := s.searchAndSettle("Atlantis")
	s.Equal(http.StatusNotFound, w.Code)

	var errorResponse models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("city not found", errorResponse.Error)

	// The failure is surfaced in the view and no secondary fetch happens.
	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Equal("City not found. Please enter a valid city name.", view.Error)
	s.False(view.Revealed["hero"])
	s.Zero(s.pollutionUpstream.requests.Load())
	s.Zero(s.forecastUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestSearchUsesResponseCache() {
	s.searchAndSettle("Kyiv")
	s.Equal(int64(1), s.weatherUpstream.requests.Load())
	s.Equal(int64(1), s.forecastUpstream.requests.Load())

	s.searchAndSettle("Kyiv")
	s.Equal(int64(1), s.weatherUpstream.requests.Load(), "second search should hit the cache")
	s.Equal(int64(1), s.forecastUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestAirPollutionFailureIsContained() {
	s.pollutionUpstream.status.Store(http.StatusInternalServerError)

	w := s.searchAndSettle("Kyiv")
	s.Equal(http.StatusOK, w.Code)

	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Equal("Kyiv, UA", view.Values["city-name"])
	s.Empty(view.Values["aqi-value"])
	s.False(view.Revealed["aqi"])
	s.True(view.Revealed["hero"])
	s.True(view.Revealed["forecast"])
	s.Empty(view.Error)
}

func (s *IntegrationTestSuite) TestRefreshByRequesterLocation() {
	w := s.get("/api/refresh")
	s.dashboard.WaitForSecondaries()
	s.Equal(http.StatusOK, w.Code)

	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Equal("Kyiv, UA", view.Values["city-name"])
	s.Equal(int64(1), s.locationUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestRefreshGeolocationFailureIsSilent() {
	s.locationUpstream.status.Store(http.StatusInternalServerError)

	w := s.get("/api/refresh")
	s.Equal(http.StatusOK, w.Code)

	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Empty(view.Error)
	s.False(view.Loading)
	s.Zero(s.weatherUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestLocationEndpoint() {
	w := s.postJSON("/api/location", `{"lat":50.45,"lon":30.52}`)
	s.dashboard.WaitForSecondaries()
	s.Equal(http.StatusOK, w.Code)

	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Equal("Kyiv, UA", view.Values["city-name"])
	// Browser-supplied coordinates skip the IP lookup.
	s.Zero(s.locationUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestSearchValidation() {
	w := s.postJSON("/api/search", `{}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Zero(s.weatherUpstream.requests.Load())
}

func (s *IntegrationTestSuite) TestErrorClearsOnNextSearch() {
	s.weatherUpstream.status.Store(http.StatusNotFound)
	s.searchAndSettle("Atlantis")

	s.weatherUpstream.reset()
	s.searchAndSettle("Kyiv")

	view := s.decodeView(s.get("/api/dashboard").Body.Bytes())
	s.Empty(view.Error)
	s.Equal("Kyiv, UA", view.Values["city-name"])
}

func (s *IntegrationTestSuite) TestMetricsExposed() {
	s.searchAndSettle("Kyiv")

	w := s.get("/metrics")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "weatherdash_fetch_total")
}
