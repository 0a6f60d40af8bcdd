// Package api exposes the dashboard view and refresh operations over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/config"
	dasherr "weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/service"
)

// ViewSource provides the current presentation snapshot.
type ViewSource interface {
	Snapshot() models.DashboardView
}

// Server represents the HTTP server and API handler
type Server struct {
	router    *gin.Engine
	config    *config.Config
	dashboard service.DashboardServiceInterface
	view      ViewSource
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	dashboard service.DashboardServiceInterface,
	view ViewSource,
) *Server {
	router := gin.Default()

	server := &Server{
		router:    router,
		config:    config,
		dashboard: dashboard,
		view:      view,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/dashboard", s.getDashboard)
		api.POST("/search", s.search)
		api.POST("/location", s.refreshByCoords)
		api.GET("/refresh", s.refreshByLocation)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.view.Snapshot())
}

func (s *Server) search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, dasherr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Searching for city", "city", req.City)
	if err := s.dashboard.RefreshByCity(c.Request.Context(), req.City); err != nil {
		slog.Error("City search error", "error", err, "city", req.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.view.Snapshot())
}

func (s *Server) refreshByCoords(c *gin.Context) {
	var req models.CoordsRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, dasherr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Refreshing by coordinates", "lat", *req.Lat, "lon", *req.Lon)
	if err := s.dashboard.RefreshByCoords(c.Request.Context(), *req.Lat, *req.Lon); err != nil {
		slog.Error("Coordinate refresh error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.view.Snapshot())
}

func (s *Server) refreshByLocation(c *gin.Context) {
	slog.Debug("Refreshing by requester location")
	if err := s.dashboard.RefreshByLocation(c.Request.Context()); err != nil {
		slog.Error("Location refresh error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.view.Snapshot())
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *dasherr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case dasherr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case dasherr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case dasherr.LocationError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to determine location"
		case dasherr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case dasherr.CacheError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
