package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
)

// RequestLogger emits one structured line per request through log.
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"remote_ip", v.RemoteIP,
			}
			if v.RequestID != "" {
				args = append(args, "request_id", v.RequestID)
			}
			ctx := c.Request().Context()
			switch {
			case v.Error != nil:
				log.Error(ctx, "request failed", append(args, "err", v.Error)...)
			case v.Status >= 500:
				log.Error(ctx, "request", args...)
			default:
				logAt(ctx, log, v.Status, args)
			}
			return nil
		},
	})
}

func logAt(ctx context.Context, log logging.Logger, status int, args []any) {
	if status >= 400 {
		log.Warn(ctx, "request", args...)
		return
	}
	log.Info(ctx, "request", args...)
}
