// Package config provides environment-driven configuration for the
// SmartHire backend services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings shared by the API server and the
// housekeeping worker.
type Config struct {
	Port        int
	DatabaseURL string

	// RedisURL is optional; when empty the scoring result cache is
	// disabled and every request recomputes.
	RedisURL string

	// ScoreCacheTTL controls how long memoized scoring results live.
	ScoreCacheTTL time.Duration

	// Housekeeping worker settings.
	WorkerInterval    time.Duration
	WorkerBatchSize   int
	WorkerConcurrency int
}

// Load reads configuration from environment variables, applying defaults
// for everything except DATABASE_URL.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		DatabaseURL:       databaseURL,
		RedisURL:          os.Getenv("REDIS_URL"),
		ScoreCacheTTL:     getEnvDuration("SCORE_CACHE_TTL", time.Hour),
		WorkerInterval:    getEnvDuration("WORKER_INTERVAL", 15*time.Minute),
		WorkerBatchSize:   getEnvInt("WORKER_BATCH_SIZE", 100),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 8),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.ScoreCacheTTL <= 0 {
		return fmt.Errorf("SCORE_CACHE_TTL must be positive, got: %s", c.ScoreCacheTTL)
	}
	if c.WorkerBatchSize < 1 {
		return fmt.Errorf("WORKER_BATCH_SIZE must be at least 1, got: %d", c.WorkerBatchSize)
	}
	if c.WorkerConcurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got: %d", c.WorkerConcurrency)
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
