// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion for secrets
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv("config.yaml")
//	backendURL := cfg.Backend.BaseURL
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire console configuration.
type Config struct {
	Environment string        `yaml:"environment"`
	Server      ServerConfig  `yaml:"server"`
	Backend     BackendConfig `yaml:"backend"`
	Storage     StorageConfig `yaml:"storage"`
	Logging     LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// BackendConfig locates the stripe2qbo backend.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig holds the import-run history database location.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${S2Q_BACKEND_TOKEN})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		Environment: getEnv("S2Q_ENV", "development"),
		Server: ServerConfig{
			Port: getEnvInt("S2Q_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("S2Q_BACKEND_URL", "http://localhost:8000"),
			Token:          os.Getenv("S2Q_BACKEND_TOKEN"),
			TimeoutSeconds: getEnvInt("S2Q_BACKEND_TIMEOUT", 30),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("S2Q_DB_PATH", "stripe2qbo.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("S2Q_LOG_LEVEL", "info"),
			Format: getEnv("S2Q_LOG_FORMAT", "console"),
		},
	}

	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv loads the config file when a path is given and falls back to
// the environment otherwise.
func LoadOrEnv(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv(), nil
	}
	return Load(path)
}

// applyDefaults fills zero values the YAML file may omit.
func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8000"
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 30
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "stripe2qbo.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// getEnv returns an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default value.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
