// Package config handles application configuration, environment loading, and
// the startup classification table.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds the configuration for the sample tracking core.
type Config struct {
	MetaDBPath         string // path to the SQLite metastore file
	ClassificationPath string // path to the classification YAML; empty uses the embedded default
	LogLevel           string // log level: debug, info, warn, error (default "info")
	Env                string // environment: "development" (default) or "production"
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		MetaDBPath:         os.Getenv("META_DB_PATH"),
		ClassificationPath: os.Getenv("CLASSIFICATION_PATH"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Env:                os.Getenv("ENV"),
	}
}
