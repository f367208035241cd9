package middleware

// identity.go holds the context accessors shared by the middleware and the
// handlers behind APIKeyAuth.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/model"
)

const identityKey = "identity"

// CurrentIdentity returns the identity stored by APIKeyAuth. ok is false on
// routes that do not run it.
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok
}

// currentUserID is the rate-limit key component for the caller, or "anon"
// when no key has been resolved yet.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
