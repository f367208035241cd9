package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// HeaderAPIKey carries the caller's opaque API key.
const HeaderAPIKey = "X-API-Key"

// IdentityResolver turns an API key into the identity it proves.
type IdentityResolver interface {
	Resolve(ctx context.Context, apiKey string) (model.Identity, error)
}

// APIKeyAuth returns an Echo middleware that resolves the X-API-Key header and
// stores the caller's identity in the context before invoking next. A missing
// key is answered with 401, an unknown one with 403; the handler never runs
// in either case.
func APIKeyAuth(r IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderAPIKey)
			id, err := r.Resolve(c.Request().Context(), key)
			switch {
			case errors.Is(err, service.ErrMissingCredential):
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "API key required"})
			case errors.Is(err, service.ErrInvalidCredential):
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid API key"})
			case err != nil:
				return err
			}
			c.Set(identityKey, id)
			c.Set("user_id", strconv.FormatInt(id.UserID, 10))
			return next(c)
		}
	}
}
