package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/roadvice/roadvice/pkg/jwtx"
)

// DefaultRefreshTokenTTL applies when REFRESH_TOKEN_TTL is unset.
const DefaultRefreshTokenTTL = 30 * 24 * time.Hour

type Config struct {
	JWTSecret string        // Required: HMAC secret for access token signing
	Issuer    string        // Optional: issuer claim for access tokens (default: roadvice)
	AccessTTL time.Duration // Optional: access token lifetime (default: 15m)

	// RefreshTTL accepts a Go duration ("720h") or a bare integer, which is
	// read as milliseconds for compatibility with older deployments.
	RefreshTTL time.Duration

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./roadvice.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token sweep interval (default: 1h)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Issuer:               getEnvOrDefault("JWT_ISSUER", "roadvice"),
		AccessTTL:            getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:           parseRefreshTTL(os.Getenv("REFRESH_TOKEN_TTL")),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "roadvice.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

// parseRefreshTTL accepts "720h" style durations or a bare integer count of
// milliseconds.
func parseRefreshTTL(value string) time.Duration {
	if value == "" {
		return DefaultRefreshTokenTTL
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return DefaultRefreshTokenTTL
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
