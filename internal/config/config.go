package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration (display snapshot cache)
	Redis RedisConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration
	CORS CORSConfig

	// Display page configuration
	Display DisplayConfig

	// Seed content configuration
	Seed SeedConfig

	// Scheduled jobs configuration
	Cron CronConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
	LogFormat   string // json, text

	// TrustedProxies may set X-Forwarded-For / X-Real-IP; other peers are keyed by remote address
	TrustedProxies []string
}

// DatabaseConfig holds database-related configuration.
// An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL                string
	Driver             string // postgres, pgx, sqlite3, sqlite; inferred from URL when empty
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// RedisConfig holds the snapshot cache configuration.
// An empty Addr keeps the cache in process memory.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

// RateLimitConfig limits mutating API calls per client IP
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DisplayConfig controls the public display page
type DisplayConfig struct {
	SiteTitle        string
	RefreshInterval  time.Duration // page poll interval
	RotationInterval time.Duration // playlist auto-advance
	TickerSeparator  string
	Location         string // IANA zone for the clock
}

// SeedConfig points at an optional YAML seed file overriding the embedded defaults
type SeedConfig struct {
	File string
}

// CronConfig holds scheduled job configuration
type CronConfig struct {
	Enabled          bool
	PruneSchedule    string // cron spec with seconds field
	KeepVideoConfigs int
}

// DefaultKeepVideoConfigs is how many legacy video configs pruning keeps by default
const DefaultKeepVideoConfigs = 10

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", []string{"127.0.0.1", "::1"}),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Driver:             getEnv("DATABASE_DRIVER", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			SnapshotTTL: getEnvAsDuration("REDIS_SNAPSHOT_TTL", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
		},
		Display: DisplayConfig{
			SiteTitle:        getEnv("DISPLAY_SITE_TITLE", "SKB Salatiga"),
			RefreshInterval:  getEnvAsDuration("DISPLAY_REFRESH_INTERVAL", 60*time.Second),
			RotationInterval: getEnvAsDuration("DISPLAY_ROTATION_INTERVAL", 5*time.Minute),
			TickerSeparator:  getEnv("DISPLAY_TICKER_SEPARATOR", " || "),
			Location:         getEnv("DISPLAY_TIMEZONE", "Asia/Jakarta"),
		},
		Seed: SeedConfig{
			File: getEnv("SEED_FILE", ""),
		},
		Cron: CronConfig{
			Enabled:          getEnvAsBool("CRON_ENABLED", true),
			PruneSchedule:    getEnv("CRON_PRUNE_SCHEDULE", "0 0 3 * * *"),
			KeepVideoConfigs: getEnvAsInt("CRON_KEEP_VIDEO_CONFIGS", DefaultKeepVideoConfigs),
		},
	}

	if config.Database.Driver == "" {
		config.Database.Driver = DriverFromURL(config.Database.URL)
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be debug, info, warn or error)", c.Server.LogLevel)
	}

	if c.Database.URL != "" {
		switch c.Database.Driver {
		case DriverPostgres, DriverPgx, DriverSQLite3, DriverSQLite:
		default:
			return fmt.Errorf("invalid DATABASE_DRIVER: %q", c.Database.Driver)
		}
	}

	if c.Display.RotationInterval <= 0 {
		return fmt.Errorf("DISPLAY_ROTATION_INTERVAL must be positive")
	}

	if c.Display.RefreshInterval <= 0 {
		return fmt.Errorf("DISPLAY_REFRESH_INTERVAL must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	if c.Cron.KeepVideoConfigs < 1 {
		return fmt.Errorf("CRON_KEEP_VIDEO_CONFIGS must be at least 1")
	}

	return nil
}

// UseMemoryStore reports whether no durable backend is configured
func (c *Config) UseMemoryStore() bool {
	return c.Database.URL == ""
}

// DriverFromURL infers the database/sql driver name from a connection URL
func DriverFromURL(url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"):
		return DriverSQLite3
	default:
		return DriverPostgres
	}
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid number value for %s, using default: %g", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("90s", "5m") or plain seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
