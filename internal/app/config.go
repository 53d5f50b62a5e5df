package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for session tokens
	Issuer    string // Optional: issuer claim for session tokens (default: taskdeck)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./taskdeck.db)
	FrontendURL  string        // Optional: base URL used in invite links (default: http://localhost:3000)
	CookieSecure bool          // Optional: set the Secure flag on session cookies (default: false)
	SessionTTL   time.Duration // Optional: session token lifetime (default: 168h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("TASKDECK_JWT_SECRET"),
		Issuer:              getEnvOrDefault("TASKDECK_ISSUER", "taskdeck"),
		DatabaseFile:        getEnvOrDefault("TASKDECK_DATABASE_FILE", "taskdeck.db"),
		FrontendURL:         getEnvOrDefault("TASKDECK_FRONTEND_URL", "http://localhost:3000"),
		CookieSecure:        getEnvBoolOrDefault("TASKDECK_COOKIE_SECURE", false),
		SessionTTL:          getEnvDurationOrDefault("TASKDECK_SESSION_TTL", 7*24*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
