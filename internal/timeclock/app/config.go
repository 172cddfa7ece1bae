package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	IssuerURL string   // Required: identity provider base URL, used for JWKS fetch and iss check
	Audience  []string // Required: accepted aud claim values

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./timeclock.db)
	SeedLocations       bool          // Optional: seed the default location when the registry is empty (default: true)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	JWKSRefreshInterval time.Duration // How often to re-fetch the provider's JWKS (default: 15m)
}

func LoadConfig() Config {
	cfg := Config{
		IssuerURL:           os.Getenv("TIMECLOCK_ISSUER_URL"),
		DatabaseFile:        getEnvOrDefault("TIMECLOCK_DATABASE_FILE", "timeclock.db"),
		SeedLocations:       getEnvBoolOrDefault("TIMECLOCK_SEED_LOCATIONS", true),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		JWKSRefreshInterval: getEnvDurationOrDefault("TIMECLOCK_JWKS_REFRESH_INTERVAL", 15*time.Minute),
	}

	// Audience may be a comma-separated list when tokens are minted for
	// several APIs.
	if aud := os.Getenv("TIMECLOCK_AUDIENCE"); aud != "" {
		for _, part := range strings.Split(aud, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Audience = append(cfg.Audience, part)
			}
		}
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
