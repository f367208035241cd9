package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; see LoadRateLimitConfig, LoadCacheConfig and
// LoadEventsConfig for the optional subsystems.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DB             DBConfig
	LogLevel       string // debug | info | warn | error
	LogFormat      string // text | json
	MetricsEnabled bool   // expose /metrics
}

// DBConfig selects the storage backend and carries its connection settings.
type DBConfig struct {
	Driver          string // sqlite | mysql | postgres
	SQLitePath      string // database file for the embedded backend
	User            string // networked backend user
	Pass            string // networked backend password (optional)
	Host            string
	Port            string
	Name            string
	PostgresURL     string // full DSN; takes precedence over the discrete fields
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Load reads a .env file when present, then builds a Config from the
// environment. Credentials for a networked backend are enforced by must()
// and a missing value stops the process.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "6066"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
		DB: DBConfig{
			Driver:          strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			SQLitePath:      getenv("SQLITE_PATH", "mental_wellness.db"),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
	}

	switch cfg.DB.Driver {
	case "mysql":
		cfg.DB.User = must("DB_USER")
		cfg.DB.Pass = os.Getenv("DB_PASS") // empty allowed
		cfg.DB.Host = must("DB_HOST")
		cfg.DB.Port = getenv("DB_PORT", "3306")
		cfg.DB.Name = must("DB_NAME")
	case "postgres", "postgresql", "pgx":
		cfg.DB.Driver = "postgres"
		cfg.DB.PostgresURL = os.Getenv("POSTGRES_URL")
		if cfg.DB.PostgresURL == "" {
			cfg.DB.User = must("DB_USER")
			cfg.DB.Pass = os.Getenv("DB_PASS")
			cfg.DB.Host = must("DB_HOST")
			cfg.DB.Port = getenv("DB_PORT", "5432")
			cfg.DB.Name = must("DB_NAME")
		}
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
