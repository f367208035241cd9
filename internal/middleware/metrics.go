package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/metrics"
)

// Metrics records request count, latency and in-flight requests per route
// pattern. The /metrics scrape itself is not counted.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			done := metrics.TrackInFlight()
			defer done()

			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the status before it is read
				c.Error(err)
			}
			metrics.ObserveHTTP(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
			return nil
		}
	}
}
