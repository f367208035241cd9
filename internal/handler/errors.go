package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// msgInternal is the only body a client sees for an unexpected failure.
const msgInternal = "Something went wrong!"

// statusFor maps a service error onto a status and response body. ok is false
// for errors that have no client-facing meaning.
func statusFor(err error) (int, echo.Map, bool) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := echo.Map{"error": service.ErrValidation.Error(), "errors": verr.Fields}
		if len(verr.Fields) > 0 {
			body["error"] = verr.Fields[0].Message
		}
		return http.StatusBadRequest, body, true
	case errors.Is(err, service.ErrMissingCredential):
		return http.StatusUnauthorized, echo.Map{"error": "API key required"}, true
	case errors.Is(err, service.ErrInvalidCredential):
		return http.StatusForbidden, echo.Map{"error": "Invalid API key"}, true
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest, echo.Map{"error": "Username already taken"}, true
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, echo.Map{"error": "User not found"}, true
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		return http.StatusNotFound, echo.Map{"error": "Entry not found or not authorized"}, true
	}
	return 0, nil, false
}

// respondError writes the mapped response for err. Anything unmapped is
// returned so the HTTP error handler logs it and answers 500.
func respondError(c echo.Context, err error) error {
	if status, body, ok := statusFor(err); ok {
		return c.JSON(status, body)
	}
	return err
}

// ErrorHandler replaces echo's default HTTPErrorHandler. Routing errors keep
// their status; store failures, panics and anything unknown are logged and
// answered with a fixed 500 body.
func ErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body, ok := statusFor(err)
		if !ok {
			var he *echo.HTTPError
			if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
				status = he.Code
				msg, isString := he.Message.(string)
				if !isString {
					msg = http.StatusText(he.Code)
				}
				body = echo.Map{"error": msg}
			} else {
				status = http.StatusInternalServerError
				body = echo.Map{"error": msgInternal}
				log.Error(c.Request().Context(), "unhandled error",
					"method", c.Request().Method,
					"uri", c.Request().RequestURI,
					"err", err,
				)
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Warn(c.Request().Context(), "write error response", "err", werr)
		}
	}
}
