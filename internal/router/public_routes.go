package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/handler"
)

// RegisterPublic registers the read-by-username endpoints. They take no API
// key: anyone who knows a username can read that user's entries and stats.
// cache wraps each of them (a pass-through unless the response cache is on).
func RegisterPublic(g *echo.Group, m *handler.MoodHandler, j *handler.JournalHandler, cache echo.MiddlewareFunc) {
	g.GET("/moods/:username", m.List, cache)
	g.GET("/moods/date/:username/:date", m.ListByDate, cache)
	g.GET("/stats/:username", m.Stats, cache)

	g.GET("/journal/:username", j.List, cache)
	g.GET("/journal/stats/:username", j.Stats, cache)
}
