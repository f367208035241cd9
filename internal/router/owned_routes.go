package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/handler"
	"github.com/iliyamo/mental-wellness-api/internal/middleware"
)

// RegisterOwned registers the key-bearing endpoints: creating entries and
// deleting the caller's own entries. All of them run APIKeyAuth first.
func RegisterOwned(g *echo.Group, m *handler.MoodHandler, j *handler.JournalHandler, r middleware.IdentityResolver) {
	auth := middleware.APIKeyAuth(r)

	g.POST("/moods", m.Create, auth)
	g.DELETE("/moods/:id", m.Delete, auth)

	g.POST("/journal", j.Create, auth)
	g.DELETE("/journal/:id", j.Delete, auth)
}
