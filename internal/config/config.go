// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to flags, the
// environment and finally Defaults.
type Config struct {
	// Paths
	ProfilePath string `json:"profile,omitempty"`    // Path to the master profile document
	OutputDir   string `json:"output_dir,omitempty"` // Directory for generated artifacts

	// Preferences
	Skills     []string `json:"skills,omitempty"`      // Preferred skills used during ingestion filtering
	RemoteOnly bool     `json:"remote_only,omitempty"` // Keep only remote jobs

	// Behavior
	TopN        int    `json:"top_n,omitempty"`        // Jobs packaged per agent run
	Port        int    `json:"port,omitempty"`         // HTTP server port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// Defaults returns the built-in fallback configuration.
func Defaults() Config {
	return Config{
		ProfilePath: "master_profile.json",
		OutputDir:   "out",
		TopN:        5,
		Port:        8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; flag handling after merging
// decides what is mandatory.
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Chain it twice to layer CLI flags over the config file over
// the built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.Skills) == 0 {
		result.Skills = defaults.Skills
	}

	// Bool fields: unset and false are indistinguishable, so true from
	// either layer wins
	if defaults.RemoteOnly {
		result.RemoteOnly = true
	}

	return result
}
