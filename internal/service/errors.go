// Package service holds the entry-analytics core: identity resolution,
// registration, entry creation and retrieval, and the aggregations behind
// the stats endpoints. It is independent of the HTTP layer and of which
// backend the row store talks to.
package service

import (
	"errors"
	"fmt"
)

// Every error returned by this package wraps exactly one of these, so the
// HTTP layer can map it to a status with errors.Is.
var (
	ErrMissingCredential      = errors.New("API key required")
	ErrInvalidCredential      = errors.New("invalid API key")
	ErrValidation             = errors.New("validation failed")
	ErrConflict               = errors.New("username already taken")
	ErrUserNotFound           = errors.New("user not found")
	ErrNotFoundOrUnauthorized = errors.New("entry not found or not authorized")
	ErrStoreUnavailable       = errors.New("store unavailable")
)

// FieldError is a validation failure on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError lists every failing field. It matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Fields[0].Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

// storeErr tags an unexpected store failure with ErrStoreUnavailable while
// keeping the driver error in the chain for logging.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
