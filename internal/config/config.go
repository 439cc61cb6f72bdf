// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is missing or malformed, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all runtime configuration for the job board.
type Config struct {
	HTTPPort      string
	GRPCPort      string // empty disables the gRPC server
	CatalogSource string
	CatalogFile   string
	DatabaseURL   string
	RedisURL      string // empty disables the Redis publisher

	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	DigestCron           string
	CookieSecure         bool
}

// Load reads environment variables, after merging an optional .env file,
// and returns a validated Config.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		CatalogSource: getenv("CATALOG_SOURCE", SourceEmbedded),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		DigestCron:    getenv("DIGEST_CRON", "5 0 * * *"),
	}

	// GRPC_PORT set to "" turns gRPC off; unset uses the default.
	if v, ok := os.LookupEnv("GRPC_PORT"); ok {
		cfg.GRPCPort = v
	} else {
		cfg.GRPCPort = "9090"
	}

	switch cfg.CatalogSource {
	case SourceEmbedded:
	case SourceFile:
		if cfg.CatalogFile == "" {
			return nil, fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be embedded, file or postgres, got %q", cfg.CatalogSource)
	}

	var err error
	if cfg.SessionIdleTimeout, err = duration("SESSION_IDLE_TIMEOUT", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = duration("SESSION_SWEEP_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}

	if s := os.Getenv("COOKIE_SECURE"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", s)
		}
		cfg.CookieSecure = v
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, s)
	}
	return d, nil
}
