package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDatabaseURL       = "DATABASE_URL"
	EnvPort              = "PORT"
	EnvAppEnv            = "APP_ENV"
	EnvDBClient          = "DB_CLIENT"
	EnvDBConnectAttempts = "DB_CONNECT_ATTEMPTS"
	EnvDBMaxOpenConns    = "DB_MAX_OPEN_CONNS"
	EnvDBQueryTimeout    = "DB_QUERY_TIMEOUT"
	EnvResetOnStart      = "RESET_ON_START"
	EnvStrictMode        = "STRICT_MODE"
	EnvRateLimitRPS      = "RATE_LIMIT_RPS"
	EnvRateLimitBurst    = "RATE_LIMIT_BURST"
	EnvCORSOrigins       = "CORS_ALLOWED_ORIGINS"
)

const (
	DefaultDatabaseURL = "postgres://localhost/acme_ice_cream?sslmode=disable"
	DefaultPort        = 3000
)

// DBClient selects the repository implementation backing the flavor routes.
type DBClient string

const (
	DBClientSQLX DBClient = "sqlx"
	DBClientGORM DBClient = "gorm"
)

type Config struct {
	DatabaseURL       string
	Port              int
	AppEnv            string
	DBClient          DBClient
	DBConnectAttempts int
	DBMaxOpenConns    int
	DBQueryTimeout    time.Duration

	// ResetOnStart drops, recreates and reseeds the flavor table on every
	// start. Any data from a previous run is discarded.
	ResetOnStart bool

	// StrictMode validates ids, maps data/integrity errors to 400 and
	// returns 404 for updates that match no row.
	StrictMode bool

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:       stringOr(getenv(EnvDatabaseURL), DefaultDatabaseURL),
		AppEnv:            stringOr(getenv(EnvAppEnv), "development"),
		DBClient:          DBClient(strings.ToLower(stringOr(getenv(EnvDBClient), string(DBClientSQLX)))),
		CORSOrigins:       splitList(stringOr(getenv(EnvCORSOrigins), "*")),
		Port:              DefaultPort,
		DBConnectAttempts: 10,
		DBMaxOpenConns:    1,
		ResetOnStart:      true,
		RateLimitBurst:    10,
	}

	var err error
	if cfg.Port, err = intOr(getenv, EnvPort, cfg.Port); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%s out of range: %d", EnvPort, cfg.Port)
	}
	if cfg.DBConnectAttempts, err = intOr(getenv, EnvDBConnectAttempts, cfg.DBConnectAttempts); err != nil {
		return nil, err
	}
	if cfg.DBConnectAttempts < 1 {
		return nil, fmt.Errorf("%s must be at least 1", EnvDBConnectAttempts)
	}
	if cfg.DBMaxOpenConns, err = intOr(getenv, EnvDBMaxOpenConns, cfg.DBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns < 1 {
		return nil, fmt.Errorf("%s must be at least 1", EnvDBMaxOpenConns)
	}
	if v := getenv(EnvDBQueryTimeout); v != "" {
		if cfg.DBQueryTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvDBQueryTimeout, err)
		}
		if cfg.DBQueryTimeout < 0 {
			return nil, fmt.Errorf("%s must not be negative", EnvDBQueryTimeout)
		}
	}
	if cfg.ResetOnStart, err = boolOr(getenv, EnvResetOnStart, cfg.ResetOnStart); err != nil {
		return nil, err
	}
	if cfg.StrictMode, err = boolOr(getenv, EnvStrictMode, cfg.StrictMode); err != nil {
		return nil, err
	}
	if v := getenv(EnvRateLimitRPS); v != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRateLimitRPS, err)
		}
		if cfg.RateLimitRPS < 0 {
			return nil, fmt.Errorf("%s must not be negative", EnvRateLimitRPS)
		}
	}
	if cfg.RateLimitBurst, err = intOr(getenv, EnvRateLimitBurst, cfg.RateLimitBurst); err != nil {
		return nil, err
	}

	switch cfg.DBClient {
	case DBClientSQLX, DBClientGORM:
	default:
		return nil, fmt.Errorf("unknown %s %q (want sqlx or gorm)", EnvDBClient, cfg.DBClient)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolOr(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
