package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"DB_DRIVER", "DB_PATH", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "DB_AUTO_MIGRATE", "SERVER_PORT", "LOG_LEVEL", "SENTRY_DSN", "ENV",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_CLIENT_TTL", "TRUSTED_PROXIES", "SHUTDOWN_GRACE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DB.Driver != DriverSQLite {
		t.Errorf("expected default driver %q, got %q", DriverSQLite, cfg.DB.Driver)
	}

	if cfg.DB.Path != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DB.Path)
	}

	if !cfg.DB.AutoMigrate {
		t.Errorf("expected auto migrate to default to true")
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if cfg.RateLimit.Burst != defaultRateBurst {
		t.Errorf("expected default burst %d, got %d", defaultRateBurst, cfg.RateLimit.Burst)
	}

	if cfg.RateLimit.RequestsPerSecond != defaultRateLimitRPS {
		t.Errorf("expected default rps %v, got %v", defaultRateLimitRPS, cfg.RateLimit.RequestsPerSecond)
	}

	if cfg.RateLimit.ClientTTL != defaultRateClientTTL {
		t.Errorf("expected default client TTL %s, got %s", defaultRateClientTTL, cfg.RateLimit.ClientTTL)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}

	if cfg.RateLimit.TrustedProxies != nil {
		t.Errorf("expected no trusted proxies by default, got %v", cfg.RateLimit.TrustedProxies)
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.10 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	expected := []string{"10.0.0.0/8", "192.0.2.10"}
	if len(cfg.RateLimit.TrustedProxies) != len(expected) {
		t.Fatalf("expected %d trusted proxies, got %v", len(expected), cfg.RateLimit.TrustedProxies)
	}
	for i, proxy := range expected {
		if cfg.RateLimit.TrustedProxies[i] != proxy {
			t.Errorf("expected proxy %q at index %d, got %q", proxy, i, cfg.RateLimit.TrustedProxies[i])
		}
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "reader")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "titles")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SENTRY_DSN", "dsn")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("RATE_LIMIT_CLIENT_TTL", "30s")
	t.Setenv("SHUTDOWN_GRACE", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DB.Driver != DriverPostgres {
		t.Errorf("expected driver %q, got %q", DriverPostgres, cfg.DB.Driver)
	}

	if cfg.DB.AutoMigrate {
		t.Errorf("expected auto migrate disabled")
	}

	expectedDSN := "host=db.internal port=6543 user=reader password=secret dbname=titles sslmode=require"
	if dsn := cfg.DB.PostgresDSN(); dsn != expectedDSN {
		t.Errorf("expected DSN %q, got %q", expectedDSN, dsn)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}

	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}

	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("expected rps 2.5, got %v", cfg.RateLimit.RequestsPerSecond)
	}

	if cfg.RateLimit.Burst != 4 {
		t.Errorf("expected burst 4, got %d", cfg.RateLimit.Burst)
	}

	if cfg.RateLimit.ClientTTL != 30*time.Second {
		t.Errorf("expected client TTL 30s, got %s", cfg.RateLimit.ClientTTL)
	}

	if cfg.ShutdownGrace != 3*time.Second {
		t.Errorf("expected shutdown grace 3s, got %s", cfg.ShutdownGrace)
	}
}

func TestPostgresDSNPrefersDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@example:5432/db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if dsn := cfg.DB.PostgresDSN(); dsn != "postgres://u:p@example:5432/db" {
		t.Fatalf("expected DATABASE_URL to be used verbatim, got %q", dsn)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for unknown driver, got nil")
	}

	if !strings.Contains(err.Error(), "unsupported DB_DRIVER value") {
		t.Fatalf("expected error to mention DB_DRIVER, got %v", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "invalid")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SERVER_PORT value") {
		t.Fatalf("expected error to mention invalid SERVER_PORT value, got %v", err)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_GRACE", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SHUTDOWN_GRACE value") {
		t.Fatalf("expected error to mention SHUTDOWN_GRACE, got %v", err)
	}
}

func TestLoadInvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_AUTO_MIGRATE", "sometimes")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid DB_AUTO_MIGRATE, got nil")
	}
}
