package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

// Dialect captures the differences between the supported backends that the
// repositories and the migration runner need to know about.
type Dialect struct {
	Name       string // sqlite | mysql | postgres
	DriverName string // database/sql driver name; sqlx derives the bindvar style from it
	Goose      string // goose dialect name
	Returning  bool   // INSERT ... RETURNING id instead of LastInsertId
}

var (
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite", Goose: "sqlite3"}
	MySQL    = Dialect{Name: "mysql", DriverName: "mysql", Goose: "mysql"}
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", Goose: "postgres", Returning: true}
)

// DialectFor maps a DB_DRIVER value to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// any of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
