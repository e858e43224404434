package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/briefing-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	briefingHandler *Briefing
	logger          *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, briefingHandler *Briefing, logger *zap.Logger) *Router {
	return &Router{
		cfg:             cfg,
		briefingHandler: briefingHandler,
		logger:          logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group; every route requires the pre-validated owner identity
	v1 := e.Group("/v1", middleware.RequireOwner(rt.logger))

	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures meeting and briefing routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.briefingHandler != nil {
		meetingGroup.GET("", rt.briefingHandler.ListMeetings)
		meetingGroup.POST("/:id/briefing", rt.briefingHandler.Generate)
		meetingGroup.GET("/:id/briefing", rt.briefingHandler.Get)
	} else {
		// Placeholder routes when handler is not initialized
		meetingGroup.GET("", rt.notImplemented)
		meetingGroup.POST("/:id/briefing", rt.notImplemented)
		meetingGroup.GET("/:id/briefing", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
