package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the client
type Config struct {
	// Backend API configuration
	API APIConfig

	// Checkout callback server configuration
	Checkout CheckoutConfig

	// Snapshot cache configuration
	Cache CacheConfig

	// Approvals watcher configuration
	Approvals ApprovalsConfig

	// Logging
	LogLevel string
}

// APIConfig holds backend REST API configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CheckoutConfig holds the local payment-callback server configuration
type CheckoutConfig struct {
	Host    string
	Port    string
	Addr    string
	Timeout time.Duration
}

// CacheConfig holds catalog snapshot cache configuration
type CacheConfig struct {
	// Backend selects the cache implementation: "memory" or "redis"
	Backend  string
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// SnapshotTTL bounds how stale a cached catalog listing may be
	SnapshotTTL time.Duration
}

// ApprovalsConfig holds pending-approval watcher configuration
type ApprovalsConfig struct {
	PollInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Backend API configuration
		API: APIConfig{
			BaseURL: getEnv("EVENTEASE_API_URL", "http://localhost:5000/api"),
			Timeout: getDurationEnv("EVENTEASE_API_TIMEOUT", 15*time.Second),
		},

		// Checkout callback server configuration
		Checkout: CheckoutConfig{
			Host:    getEnv("CHECKOUT_CALLBACK_HOST", "127.0.0.1"),
			Port:    getEnv("CHECKOUT_CALLBACK_PORT", "8943"),
			Timeout: getDurationEnv("CHECKOUT_TIMEOUT", 5*time.Minute),
		},

		// Snapshot cache configuration
		Cache: CacheConfig{
			Backend:     getEnv("CACHE_BACKEND", "memory"),
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getIntEnv("REDIS_DB", 0),
			SnapshotTTL: getDurationEnv("CATALOG_SNAPSHOT_TTL", 30*time.Second),
		},

		// Approvals watcher configuration
		Approvals: ApprovalsConfig{
			PollInterval: getDurationEnv("APPROVALS_POLL_INTERVAL", 30*time.Second),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Build composite values
	cfg.Cache.Addr = cfg.Cache.Host + ":" + cfg.Cache.Port
	cfg.Checkout.Addr = cfg.Checkout.Host + ":" + cfg.Checkout.Port

	return cfg
}

// CallbackBaseURL returns the externally visible base URL of the local
// checkout callback server.
func (c *Config) CallbackBaseURL() string {
	return "http://" + c.Checkout.Addr
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
