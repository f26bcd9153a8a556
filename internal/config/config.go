// Package config provides unified configuration for the aequery CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode represents how questions are turned into structured queries.
type Mode string

const (
	// ModeHeuristic scores the dictionary against the question locally.
	ModeHeuristic Mode = "heuristic"

	// ModeModel asks a chat-completions endpoint and falls back to the
	// heuristic when the call fails.
	ModeModel Mode = "model"
)

// Config holds the unified configuration for the aequery CLI.
type Config struct {
	// Dataset configuration
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`

	// Interpreter configuration
	Interpreter InterpreterConfig `json:"interpreter" yaml:"interpreter"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// DatasetConfig holds dataset source configuration.
type DatasetConfig struct {
	// Path is the dataset file to load
	Path string `json:"path" yaml:"path"`

	// Format is the dataset format: csv, sqlite
	Format string `json:"format" yaml:"format"`

	// Table is the table to read (sqlite format only)
	Table string `json:"table" yaml:"table"`
}

// InterpreterConfig holds question interpreter configuration.
type InterpreterConfig struct {
	// Mode selects the interpreter: heuristic, model
	Mode Mode `json:"mode" yaml:"mode"`

	// Model is the completion model name (model mode)
	Model string `json:"model" yaml:"model"`

	// BaseURL is the API root of the completion endpoint (model mode)
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key
	// (model mode). The key itself never lives in the config file.
	APIKeyEnv string `json:"api_key_env" yaml:"api_key_env"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `json:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration for local use.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:   "metadata/adae.csv",
			Format: "csv",
			Table:  "adae",
		},
		Interpreter: InterpreterConfig{
			Mode:      ModeHeuristic,
			Model:     "gpt-5",
			BaseURL:   "https://api.openai.com/v1",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}

	switch c.Dataset.Format {
	case "csv":
	case "sqlite":
		if c.Dataset.Table == "" {
			return fmt.Errorf("dataset.table is required when dataset format is sqlite")
		}
	default:
		return fmt.Errorf("invalid dataset format: %s (must be csv or sqlite)", c.Dataset.Format)
	}

	switch c.Interpreter.Mode {
	case ModeHeuristic:
	case ModeModel:
		if c.Interpreter.Model == "" {
			return fmt.Errorf("interpreter.model is required when interpreter mode is model")
		}
		if c.Interpreter.BaseURL == "" {
			return fmt.Errorf("interpreter.base_url is required when interpreter mode is model")
		}
		if c.Interpreter.APIKeyEnv == "" {
			return fmt.Errorf("interpreter.api_key_env is required when interpreter mode is model")
		}
	default:
		return fmt.Errorf("invalid interpreter mode: %s (must be heuristic or model)", c.Interpreter.Mode)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// APIKey reads the configured key variable from the environment. Empty
// means the variable is unset; callers in model mode treat that as a
// configuration error.
func (c *Config) APIKey() string {
	return os.Getenv(c.Interpreter.APIKeyEnv)
}

// LogLevel maps the configured level name onto slog's levels.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the AEQUERY_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("AEQUERY_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("AEQUERY_DATASET_FORMAT"); v != "" {
		cfg.Dataset.Format = v
	}
	if v := os.Getenv("AEQUERY_DATASET_TABLE"); v != "" {
		cfg.Dataset.Table = v
	}

	if v := os.Getenv("AEQUERY_INTERPRETER_MODE"); v != "" {
		cfg.Interpreter.Mode = Mode(v)
	}
	if v := os.Getenv("AEQUERY_INTERPRETER_MODEL"); v != "" {
		cfg.Interpreter.Model = v
	}
	if v := os.Getenv("AEQUERY_INTERPRETER_BASE_URL"); v != "" {
		cfg.Interpreter.BaseURL = v
	}
	if v := os.Getenv("AEQUERY_INTERPRETER_API_KEY_ENV"); v != "" {
		cfg.Interpreter.APIKeyEnv = v
	}

	if v := os.Getenv("AEQUERY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Load builds the effective configuration: defaults, then the optional
// config file, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	LoadFromEnv(cfg)
	return cfg, nil
}
