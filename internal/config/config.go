package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime configuration values for the page title server.
type Config struct {
	DB            DatabaseConfig
	ServerPort    int
	LogLevel      string
	SentryDSN     string
	Environment   string
	RateLimit     RateLimitConfig
	ShutdownGrace time.Duration
}

// DatabaseConfig selects and locates the backing store.
type DatabaseConfig struct {
	Driver      string
	Path        string
	URL         string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// RateLimitConfig tunes the per-client HTTP rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
	TrustedProxies    []string
}

const (
	defaultDBDriver      = DriverSQLite
	defaultDBPath        = "./data/pagetitle.db"
	defaultDBHost        = "localhost"
	defaultDBPort        = 5432
	defaultDBUser        = "postgres"
	defaultDBPassword    = "postgres"
	defaultDBName        = "postgres"
	defaultDBSSLMode     = "disable"
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultEnvironment   = "development"
	defaultRateLimitRPS  = 10
	defaultRateBurst     = 20
	defaultRateClientTTL = 5 * time.Minute
	defaultShutdownGrace = 10 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DB: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", defaultDBDriver)),
			Path:     getEnv("DB_PATH", defaultDBPath),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", defaultDBHost),
			User:     getEnv("DB_USER", defaultDBUser),
			Password: getEnv("DB_PASSWORD", defaultDBPassword),
			Name:     getEnv("DB_NAME", defaultDBName),
			SSLMode:  getEnv("DB_SSLMODE", defaultDBSSLMode),
		},
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		Environment: getEnv("ENV", defaultEnvironment),
	}

	switch cfg.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, eris.Errorf("unsupported DB_DRIVER value: %s", cfg.DB.Driver)
	}

	var err error
	if cfg.DB.Port, err = getInt("DB_PORT", defaultDBPort); err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate, err = getBool("DB_AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.ServerPort, err = getInt("SERVER_PORT", defaultServerPort); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RequestsPerSecond, err = getFloat("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = getInt("RATE_LIMIT_BURST", defaultRateBurst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.ClientTTL, err = getDuration("RATE_LIMIT_CLIENT_TTL", defaultRateClientTTL); err != nil {
		return nil, err
	}
	cfg.RateLimit.TrustedProxies = getList("TRUSTED_PROXIES")
	if cfg.ShutdownGrace, err = getDuration("SHUTDOWN_GRACE", defaultShutdownGrace); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PostgresDSN returns DATABASE_URL when set, otherwise a key/value DSN assembled from the DB_* fields.
func (c DatabaseConfig) PostgresDSN() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// getList splits a comma-separated value, dropping blank entries.
func getList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, strconv.Itoa(fallback))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := getEnv(key, strconv.FormatFloat(fallback, 'f', -1, 64))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, strconv.FormatBool(fallback))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, fallback.String())
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}
