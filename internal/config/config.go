package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath         string
	LogLevel             string
	Port                 int
	DevMode              bool
	TrialCount           int // Monte Carlo trials per simulation run
	HistoryRetentionDays int // prune persisted runs older than this
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvAsInt("GO_PORT", 8004),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		DatabasePath:         getEnv("DATABASE_PATH", "./data/goal_planner.db"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		TrialCount:           getEnvAsInt("SIM_TRIAL_COUNT", 5000),
		HistoryRetentionDays: getEnvAsInt("HISTORY_RETENTION_DAYS", 90),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.TrialCount <= 0 {
		return fmt.Errorf("SIM_TRIAL_COUNT must be positive, got %d", c.TrialCount)
	}
	if c.HistoryRetentionDays <= 0 {
		return fmt.Errorf("HISTORY_RETENTION_DAYS must be positive, got %d", c.HistoryRetentionDays)
	}
	return nil
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultVal bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultVal
}
