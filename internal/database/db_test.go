package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mental-wellness-api/internal/config"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, d, err := Open(ctx, config.DBConfig{Driver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, SQLite, d)
	for _, tbl := range []string{"users", "mood_entries", "journal_entries"} {
		assert.True(t, tableExists(t, db.DB, tbl), tbl)
	}

	// running again is a no-op
	require.NoError(t, Migrate(ctx, db.DB, d))
}

func TestOpen_SQLiteForeignKeysOn(t *testing.T) {
	ctx := context.Background()
	db, _, err := Open(ctx, config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "fk.db")})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO mood_entries (user_id, mood, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, 999, "happy")
	require.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.DBConfig{Driver: "oracle"})
	require.Error(t, err)
}

func TestMigrate_PropagatesGooseError(t *testing.T) {
	old := gooseUpContext
	defer func() { gooseUpContext = old }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return errors.New("boom")
	}
	err := Migrate(context.Background(), nil, Postgres)
	require.EqualError(t, err, "boom")
	assert.Equal(t, "postgres", gotDir)
}

func TestDialectFor(t *testing.T) {
	tests := map[string]Dialect{
		"":           SQLite,
		"SQLite3":    SQLite,
		"mysql":      MySQL,
		"postgresql": Postgres,
		"pgx":        Postgres,
	}
	for in, want := range tests {
		got, err := DialectFor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := DialectFor("mssql")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/wellness?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN(MySQL, config.DBConfig{User: "app", Pass: "secret", Host: "db", Port: "3306", Name: "wellness"}))
	assert.Equal(t,
		"app@tcp(db:3306)/wellness?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("app", "", "db", "3306", "wellness"))
	assert.Equal(t,
		"postgres://app:secret@pg:5432/wellness?sslmode=disable",
		DSN(Postgres, config.DBConfig{User: "app", Pass: "secret", Host: "pg", Port: "5432", Name: "wellness"}))
	assert.Equal(t, "postgres://x", DSN(Postgres, config.DBConfig{PostgresURL: "postgres://x", Host: "ignored"}))
	assert.Contains(t, DSN(SQLite, config.DBConfig{SQLitePath: "a.db"}), "a.db?_pragma=foreign_keys(1)")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("1062 in plain text")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	ctx := context.Background()
	db, _, err := Open(ctx, config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "uq.db")})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO users (username, api_key) VALUES ('alice', 'k1')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (username, api_key) VALUES ('alice', 'k2')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}
