package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Batch    BatchConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// BatchConfig tunes the bulk attendance coordinator and the background
// sheet refresh.
type BatchConfig struct {
	ConcurrencyLimit    int
	ViewRefreshInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deployments; env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Batch configuration
	concurrencyLimit, err := strconv.Atoi(getEnv("BULK_CONCURRENCY_LIMIT", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid BULK_CONCURRENCY_LIMIT: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("VIEW_REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_REFRESH_INTERVAL: %w", err)
	}

	config.Batch = BatchConfig{
		ConcurrencyLimit:    concurrencyLimit,
		ViewRefreshInterval: refreshInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Batch.ConcurrencyLimit <= 0 {
		return fmt.Errorf("BULK_CONCURRENCY_LIMIT must be positive")
	}
	if c.Batch.ViewRefreshInterval <= 0 {
		return fmt.Errorf("VIEW_REFRESH_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
