package config_test

import (
	"testing"
	"time"

	"gradjobs/internal/config"
)

var allKeys = []string{
	"HTTP_PORT", "CATALOG_SOURCE", "CATALOG_FILE", "DATABASE_URL", "REDIS_URL",
	"SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_INTERVAL", "DIGEST_CRON", "COOKIE_SECURE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "9090")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.GRPCPort != "9090" {
		t.Errorf("ports = %s/%s", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.CatalogSource != config.SourceEmbedded {
		t.Errorf("CatalogSource = %q", cfg.CatalogSource)
	}
	if cfg.SessionIdleTimeout != 12*time.Hour || cfg.SessionSweepInterval != 30*time.Minute {
		t.Errorf("session timings = %v/%v", cfg.SessionIdleTimeout, cfg.SessionSweepInterval)
	}
	if cfg.DigestCron != "5 0 * * *" || cfg.CookieSecure {
		t.Errorf("DigestCron = %q CookieSecure = %v", cfg.DigestCron, cfg.CookieSecure)
	}
}

func TestLoad_EmptyGRPCPortDisables(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCPort != "" {
		t.Errorf("GRPCPort = %q, want empty", cfg.GRPCPort)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown source", map[string]string{"CATALOG_SOURCE": "s3"}},
		{"file without path", map[string]string{"CATALOG_SOURCE": "file"}},
		{"postgres without url", map[string]string{"CATALOG_SOURCE": "postgres"}},
		{"bad idle timeout", map[string]string{"SESSION_IDLE_TIMEOUT": "forever"}},
		{"negative sweep", map[string]string{"SESSION_SWEEP_INTERVAL": "-1m"}},
		{"bad bool", map[string]string{"COOKIE_SECURE": "sometimes"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(); err == nil {
				t.Errorf("Load accepted %v", tc.env)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/gradjobs")
	t.Setenv("SESSION_IDLE_TIMEOUT", "2h")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogSource != config.SourcePostgres || cfg.SessionIdleTimeout != 2*time.Hour || !cfg.CookieSecure {
		t.Errorf("cfg = %+v", cfg)
	}
}
