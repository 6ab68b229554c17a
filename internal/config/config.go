package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the vexec configuration.
type Config struct {
	LogLevel string        `yaml:"log_level" toml:"log_level"` // debug, info, warn, error
	Shell    string        `yaml:"shell" toml:"shell"`         // Shell running from_shell verbs (empty = platform default)
	History  HistoryConfig `yaml:"history" toml:"history"`
	Verbs    []VerbConf    `yaml:"verbs" toml:"verbs"`
}

// HistoryConfig holds execution history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"` // Record executed verbs
	DBPath  string `yaml:"db_path" toml:"db_path"` // SQLite file (overrides default)
	Limit   int    `yaml:"limit" toml:"limit"`     // Rows shown by `vexec history`
}

// VerbConf is one user-defined verb.
type VerbConf struct {
	// Invocation is how the verb is typed, e.g. "mv {newpath}".
	Invocation string `yaml:"invocation,omitempty" toml:"invocation,omitempty"`

	// Shortcut is an optional alias for the invocation name.
	Shortcut string `yaml:"shortcut,omitempty" toml:"shortcut,omitempty"`

	// Execution is an external pattern ("vi {file}") or an internal
	// (":focus ~").
	Execution string `yaml:"execution" toml:"execution"`

	Description string `yaml:"description,omitempty" toml:"description,omitempty"`

	// FromShell runs the command from the calling shell.
	FromShell *bool `yaml:"from_shell,omitempty" toml:"from_shell,omitempty"`

	// LeaveApp runs the command as the last thing (default true).
	LeaveApp *bool `yaml:"leave,omitempty" toml:"leave,omitempty"`

	// ApplyTo restricts the verb to "file", "directory" or "any".
	ApplyTo string `yaml:"apply_to,omitempty" toml:"apply_to,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Shell:    "",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "", // Use default from paths
			Limit:   20,
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Files ending in .toml are read as TOML, anything else as YAML.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file, in the format
// its extension names.
func (c *Config) SaveToFile(path string) error {
	// Derive directory from path and ensure it exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by key.
// For example: "log_level" or "history.enabled"
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "shell":
		return c.Shell, nil
	case "history.enabled":
		return strconv.FormatBool(c.History.Enabled), nil
	case "history.db_path":
		return c.History.DBPath, nil
	case "history.limit":
		return strconv.Itoa(c.History.Limit), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set sets a configuration value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "log_level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", value)
		}
		c.LogLevel = value
	case "shell":
		c.Shell = value
	case "history.enabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for history.enabled: %w", err)
		}
		c.History.Enabled = v
	case "history.db_path":
		c.History.DBPath = value
	case "history.limit":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for history.limit: %w", err)
		}
		if v < 0 {
			return errors.New("history.limit must be >= 0")
		}
		c.History.Limit = v
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Validate checks that the configuration values are valid.
// Individual verb definitions are checked when the verb store is built, so
// that one broken verb doesn't disable the others.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be debug, info, warn, or error (got: %s)", c.LogLevel)
	}

	if c.History.Limit < 0 {
		return errors.New("history.limit must be >= 0")
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("VEXEC_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.LogLevel = "debug"
		}
	}
	if v := os.Getenv("VEXEC_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.LogLevel = v
		}
	}
	if v := os.Getenv("VEXEC_SHELL"); v != "" {
		c.Shell = v
	}
}

// ListKeys returns the keys accepted by Get and Set.
func ListKeys() []string {
	return []string{
		"log_level",
		"shell",
		"history.enabled",
		"history.db_path",
		"history.limit",
	}
}

// HistoryDBPath returns the configured history database, or the default
// one under paths.
func (c *Config) HistoryDBPath(paths *Paths) string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return paths.DatabaseFile()
}
