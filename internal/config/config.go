// Package config provides the gateway's configuration, parsed and
// validated once at process start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds every configuration value the gateway reads. All values
// come from the environment (optionally via .env files); nothing reads
// os.Getenv after startup.
type AppConfig struct {
	serverPort  string
	environment string
	logLevel    string

	googleClientID     string
	googleClientSecret string
	googleRefreshToken string

	upstreamTimeout  time.Duration
	upstreamPageSize int

	fallbackEnabled bool

	cacheEnabled   bool
	cacheBackend   string
	redisAddr      string
	redisPassword  string
	redisDB        int
	cacheListTTL   time.Duration
	cacheDetailTTL time.Duration

	corsAllowedOrigins []string
}

// NewConfig reads the configuration from the environment with defaults.
func NewConfig() *AppConfig {
	return &AppConfig{
		serverPort:  getEnvString("SERVER_PORT", "8080"),
		environment: getEnvString("ENVIRONMENT", "development"),
		logLevel:    getEnvString("LOG_LEVEL", "info"),

		googleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		googleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		googleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),

		upstreamTimeout:  getEnvDuration("UPSTREAM_TIMEOUT", "10s"),
		upstreamPageSize: getEnvInt("UPSTREAM_PAGE_SIZE", 100),

		fallbackEnabled: getEnvBool("FALLBACK_ENABLED", false),

		cacheEnabled:   getEnvBool("CACHE_ENABLED", false),
		cacheBackend:   getEnvString("CACHE_BACKEND", "memory"),
		redisAddr:      getEnvString("REDIS_ADDR", "localhost:6379"),
		redisPassword:  os.Getenv("REDIS_PASSWORD"),
		redisDB:        getEnvInt("REDIS_DB", 0),
		cacheListTTL:   getEnvDuration("CACHE_LIST_TTL", "60s"),
		cacheDetailTTL: getEnvDuration("CACHE_DETAIL_TTL", "30s"),

		corsAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}
}

// GetServerPort returns the HTTP listen port.
func (c *AppConfig) GetServerPort() string { return c.serverPort }

// GetEnvironment returns the deployment environment name.
func (c *AppConfig) GetEnvironment() string { return c.environment }

// IsProduction reports whether the gateway runs in production.
func (c *AppConfig) IsProduction() bool { return c.environment == "production" }

// GetLogLevel returns the configured log level.
func (c *AppConfig) GetLogLevel() string { return c.logLevel }

// GetGoogleClientID returns the OAuth client identifier.
func (c *AppConfig) GetGoogleClientID() string { return c.googleClientID }

// GetGoogleClientSecret returns the OAuth client secret.
func (c *AppConfig) GetGoogleClientSecret() string { return c.googleClientSecret }

// GetGoogleRefreshToken returns the long-lived refresh token.
func (c *AppConfig) GetGoogleRefreshToken() string { return c.googleRefreshToken }

// GetUpstreamTimeout returns the per-call timeout for Classroom reads.
func (c *AppConfig) GetUpstreamTimeout() time.Duration { return c.upstreamTimeout }

// GetUpstreamPageSize returns the bounded page size for list reads.
func (c *AppConfig) GetUpstreamPageSize() int { return c.upstreamPageSize }

// GetFallbackEnabled reports whether placeholder substitution is active.
func (c *AppConfig) GetFallbackEnabled() bool { return c.fallbackEnabled }

// GetCacheEnabled reports whether the response cache is active.
func (c *AppConfig) GetCacheEnabled() bool { return c.cacheEnabled }

// GetCacheBackend returns the cache backend name, "memory" or "redis".
func (c *AppConfig) GetCacheBackend() string { return c.cacheBackend }

// GetRedisAddr returns the Redis address.
func (c *AppConfig) GetRedisAddr() string { return c.redisAddr }

// GetRedisPassword returns the Redis password.
func (c *AppConfig) GetRedisPassword() string { return c.redisPassword }

// GetRedisDB returns the Redis database index.
func (c *AppConfig) GetRedisDB() int { return c.redisDB }

// GetCacheListTTL returns the course list cache TTL.
func (c *AppConfig) GetCacheListTTL() time.Duration { return c.cacheListTTL }

// GetCacheDetailTTL returns the course detail cache TTL.
func (c *AppConfig) GetCacheDetailTTL() time.Duration { return c.cacheDetailTTL }

// GetCORSAllowedOrigins returns the allowed origins; empty means any.
func (c *AppConfig) GetCORSAllowedOrigins() []string { return c.corsAllowedOrigins }

// MissingGoogleCredentials returns the names of unset credential variables.
func (c *AppConfig) MissingGoogleCredentials() []string {
	var missing []string
	if c.googleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.googleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.googleRefreshToken == "" {
		missing = append(missing, "GOOGLE_REFRESH_TOKEN")
	}
	return missing
}

// Validate checks the configuration, failing fast at startup. Missing
// Google credentials are fatal unless the fallback policy is enabled, in
// which case the gateway may deliberately run in demo mode.
func (c *AppConfig) Validate() error {
	if c.serverPort == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.environment != "development" && c.environment != "staging" && c.environment != "production" {
		return fmt.Errorf("environment must be one of: development, staging, production")
	}
	if c.cacheBackend != "memory" && c.cacheBackend != "redis" {
		return fmt.Errorf("cache backend must be one of: memory, redis")
	}
	if c.upstreamPageSize <= 0 {
		return fmt.Errorf("upstream page size must be positive")
	}
	if missing := c.MissingGoogleCredentials(); len(missing) > 0 && !c.fallbackEnabled {
		return fmt.Errorf("missing Google credentials: %s (set FALLBACK_ENABLED=true to run in demo mode)",
			strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Second
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
