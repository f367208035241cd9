package database

import (
	"context"
	"database/sql"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/iliyamo/mental-wellness-api/internal/database/migrations"
)

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations for d. Already applied versions are
// skipped, so it is safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.Goose); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, d.Name)
}
