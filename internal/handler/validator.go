package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// fieldMessages holds the client-facing text for a failed rule, keyed by the
// JSON field name.
var fieldMessages = map[string]string{
	"username": "Username required",
	"mood":     "Mood is required",
	"title":    "Title is required",
	"content":  "Content is required",
}

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
// Failures come back as *service.ValidationError so handlers report them the
// same way as the service's own checks.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &service.ValidationError{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out.Fields = append(out.Fields, service.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
