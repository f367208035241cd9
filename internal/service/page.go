package service

import (
	"github.com/iliyamo/mental-wellness-api/internal/pagination"
)

// Page is one window of a user's entries plus the pagination envelope.
type Page[T any] struct {
	Entries    []T                 `json:"entries"`
	Pagination pagination.Envelope `json:"pagination"`
}

// checkWindow enforces the request bounds on page and limit; nil means the
// default applies.
func checkWindow(page, limit *int) error {
	var fields []FieldError
	if page != nil && *page < 1 {
		fields = append(fields, FieldError{Field: "page", Message: "Page must be a positive integer"})
	}
	if limit != nil && (*limit < 1 || *limit > pagination.MaxLimit) {
		fields = append(fields, FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
