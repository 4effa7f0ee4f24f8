// Package config provides configuration management for the ledger
// engine and its CLI. It loads settings from environment variables and
// .env files, with an optional YAML ledger file for per-book settings.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`

	// Section is the default section the CLI operates on.
	Section string `yaml:"section"`
}

// DatabaseConfig represents storage configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file. Empty means the resolver's
	// default under the ledger root.
	Path string `yaml:"path"`

	// Root is the ledger workspace directory holding the database and
	// document attachments.
	Root string `yaml:"root"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Load loads configuration from environment variables.
// It automatically loads .env from the current directory if available;
// a custom .env path may be given.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Database: DatabaseConfig{
			Path: os.Getenv("YTX_DB_PATH"),
			Root: getEnvOrDefault("YTX_LEDGER_ROOT", "./ledger"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("YTX_LOG_LEVEL", "info"),
			Debug: os.Getenv("YTX_DEBUG") == "true",
		},
		Section: getEnvOrDefault("YTX_SECTION", "finance"),
	}

	return config, nil
}

// LoadFile loads a YAML ledger configuration file over the environment
// defaults: file values win where set.
func LoadFile(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := *base
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
