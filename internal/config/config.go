package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the user's home directory when no --config is given.
const DefaultFileName = ".genie-annotate.yaml"

// Config holds connection and logging settings.
type Config struct {
	// Workspace URL, e.g. https://adb-123.azuredatabricks.net
	Host string `yaml:"host"`
	// Personal access token sent as a bearer token.
	Token string `yaml:"token"`
	// Per-request timeout as a Go duration string.
	Timeout string `yaml:"timeout"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error; empty disables logging
}

// DefaultConfig returns the built-in defaults. Host and token have none.
func DefaultConfig() *Config {
	return &Config{
		Timeout: "30s",
	}
}

// DefaultPath returns ~/.genie-annotate.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides uses the same variable names as the Databricks CLI and SDKs.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DATABRICKS_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("DATABRICKS_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("GENIE_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("GENIE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// TimeoutDuration parses Timeout. Empty means zero (client default).
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// Validate checks the settings needed to reach the API.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host is not set (config host or DATABRICKS_HOST)"))
	}
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, errors.New("token is not set (config token or DATABRICKS_TOKEN)"))
	}
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
