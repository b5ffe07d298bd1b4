// Package config loads server configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all server configuration. The core scheduler itself takes
// no configuration; everything here belongs to the HTTP wrapper and the
// holiday sources.
type Config struct {
	Port         int
	DatabasePath string // SQLite holiday store; empty disables it
	HolidayFile  string // country,date CSV; empty disables it
	CountryMode  string // "table" or "turkiye"
	LogLevel     string
	Pretty       bool
	RefreshSpec  string // cron spec for the holiday snapshot reload
}

// Load reads configuration from environment variables and .env (if present).
func Load() (*Config, error) {
	// godotenv will not override variables already set in the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("PORT", 8080),
		DatabasePath: getEnv("DATABASE_PATH", "holidays.db"),
		HolidayFile:  getEnv("HOLIDAY_FILE", ""),
		CountryMode:  strings.ToLower(getEnv("COUNTRY_MODE", "table")),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Pretty:       getEnvAsBool("LOG_PRETTY", true),
		RefreshSpec:  getEnv("HOLIDAY_REFRESH_SPEC", "0 4 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.CountryMode != "table" && c.CountryMode != "turkiye" {
		return fmt.Errorf("invalid COUNTRY_MODE %q (use table or turkiye)", c.CountryMode)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
