package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/middleware"
	"github.com/iliyamo/mental-wellness-api/internal/model"
	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// queryInt reads an optional integer query parameter. nil means the parameter
// was absent; a value that is not an integer is a validation error carrying
// msg.
func queryInt(c echo.Context, name, msg string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &service.ValidationError{Fields: []service.FieldError{{Field: name, Message: msg}}}
	}
	return &n, nil
}

// pageParams parses page and limit together so both failures are reported.
func pageParams(c echo.Context) (page, limit *int, err error) {
	var fields []service.FieldError
	page, perr := queryInt(c, "page", "Page must be a positive integer")
	limit, lerr := queryInt(c, "limit", "Limit must be between 1 and 100")
	for _, e := range []error{perr, lerr} {
		if ve, ok := e.(*service.ValidationError); ok {
			fields = append(fields, ve.Fields...)
		}
	}
	if len(fields) > 0 {
		return nil, nil, &service.ValidationError{Fields: fields}
	}
	return page, limit, nil
}

// parseEntryID parses the :id path parameter of a delete route. ok is false
// for anything that cannot be a row id.
func parseEntryID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// caller returns the identity set by middleware.APIKeyAuth. A route wired
// without it is a programming error and surfaces as a 500.
func caller(c echo.Context) (model.Identity, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return model.Identity{}, echo.NewHTTPError(http.StatusInternalServerError, "identity missing from context")
	}
	return id, nil
}
