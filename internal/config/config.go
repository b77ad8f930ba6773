// Package config loads server, token and logging configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the server configuration. Values come from the environment and
// may be overridden by a JSON or TOML file.
type Config struct {
	Port        int    `json:"port,omitempty" toml:"port"`
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url"`
	LogLevel    string `json:"log_level,omitempty" toml:"log_level"`
	LogFormat   string `json:"log_format,omitempty" toml:"log_format"`
}

// Defaults applied when neither the environment nor a file sets a value.
const (
	DefaultPort      = 3001
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// FromEnv reads PORT, DATABASE_URL, LOG_LEVEL and LOG_FORMAT.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// LoadFile reads a config file. Files ending in .toml are decoded as TOML,
// anything else as JSON.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML %s: %w", path, err)
		}
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Merge returns c with every zero field taken from other.
func (c Config) Merge(other Config) Config {
	if c.Port == 0 {
		c.Port = other.Port
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = other.DatabaseURL
	}
	if c.LogLevel == "" {
		c.LogLevel = other.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = other.LogFormat
	}
	return c
}

// WithDefaults fills unset fields with package defaults.
func (c Config) WithDefaults() Config {
	return c.Merge(Config{
		Port:      DefaultPort,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	})
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port must be between 1 and 65535, got %d", c.Port)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("config error: log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}
