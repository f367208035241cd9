// Package repository implements the row store on top of database/sql. One
// implementation serves every backend; the differences live in
// database.Dialect.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row, or when an
// ownership-scoped delete affects none.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate")

// ErrUnsupportedColumn is returned when a top-N query names a column outside
// the table's allowlist.
var ErrUnsupportedColumn = errors.New("unsupported frequency column")
