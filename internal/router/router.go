package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/handler"
	"github.com/iliyamo/mental-wellness-api/internal/metrics"
)

// RegisterRoutes registers the operational endpoints that live outside /api:
// the health probe and, when enabled, the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler, metricsEnabled bool) {
	e.GET("/healthz", h.Health)
	if metricsEnabled {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}
}

// NewAPIGroup creates the /api group. Every route under it passes through
// the given middleware (the rate limiter in production).
func NewAPIGroup(e *echo.Echo, m ...echo.MiddlewareFunc) *echo.Group {
	return e.Group("/api", m...)
}

// RegisterAuth registers registration and the API documentation. Neither
// needs a key.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler, d *handler.DocsHandler) {
	g.POST("/register", a.Register)
	g.GET("/docs", d.Docs)
}
