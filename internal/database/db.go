package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/mental-wellness-api/internal/config"
)

// Open connects to the configured backend, applies pool settings, verifies
// the connection and runs pending migrations. The returned handle is the one
// store handle for the life of the process.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, Dialect, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}
	db, err := sqlx.Open(d.DriverName, DSN(d, cfg))
	if err != nil {
		return nil, Dialect{}, err
	}

	// Pool settings
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if d == SQLite {
		// one writer; concurrent connections would only contend on the file lock
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	if err := Migrate(ctx, db.DB, d); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("migrate %s: %w", d.Name, err)
	}
	return db, d, nil
}

// DSN builds the driver-specific connection string for cfg.
func DSN(d Dialect, cfg config.DBConfig) string {
	switch d {
	case MySQL:
		return MySQLDSN(cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
	case Postgres:
		if cfg.PostgresURL != "" {
			return cfg.PostgresURL
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Pass),
			Host:     cfg.Host + ":" + cfg.Port,
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return SQLiteDSN(cfg.SQLitePath)
	}
}

// MySQLDSN formats a go-sql-driver DSN.
func MySQLDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// SQLiteDSN enables foreign keys and a busy timeout, and stores timestamps in
// SQLite's own text format so range comparisons on created_at sort correctly.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
