package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./gatepass.db)
	BaseURL      string // Public root redemption URLs are built under (default: http://localhost:8080)
	AdminToken   string // Required for administrative endpoints; empty disables them

	DefaultAllocation   int    // Invitations granted when a ledger is first materialized (-1 = unlimited)
	DefaultDurationDays int    // Validity window for new keys in days (-1 = never expires)
	DefaultGroupNames   string // Comma-delimited groups assigned to registrants (optional)

	TokenMode string // Token artifact mode for delivery (inline, jwt) (default: inline)
	JWTSecret string // HMAC secret for jwt token mode

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired key sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("GATEPASS_DATABASE_FILE", "gatepass.db"),
		BaseURL:      getEnvOrDefault("GATEPASS_BASE_URL", "http://localhost:8080"),
		AdminToken:   os.Getenv("GATEPASS_ADMIN_TOKEN"),

		DefaultAllocation:   getEnvIntOrDefault("GATEPASS_DEFAULT_ALLOCATION", 10),
		DefaultDurationDays: getEnvIntOrDefault("GATEPASS_DEFAULT_DURATION_DAYS", 14),
		DefaultGroupNames:   os.Getenv("GATEPASS_DEFAULT_GROUPS"),

		TokenMode: getEnvOrDefault("GATEPASS_TOKEN_MODE", "inline"),
		JWTSecret: os.Getenv("GATEPASS_JWT_SECRET"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
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
