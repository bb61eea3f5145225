// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"pricing-calc/internal/errors"
	"pricing-calc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Scenario contains scenario file configuration
	Scenario ScenarioConfig `json:"scenario"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables ANSI colors
	NoColor bool `json:"no_color"`

	// Animate counts metrics up before printing the report
	Animate bool `json:"animate"`

	// AnimationFrames is the number of tween frames per metric
	AnimationFrames int `json:"animation_frames"`

	// ShowProjection includes the monthly projection table
	ShowProjection bool `json:"show_projection"`
}

// ScenarioConfig contains scenario-related settings
type ScenarioConfig struct {
	// DefaultPath is loaded when no --scenario flag is given
	DefaultPath string `json:"default_path,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat:   "cli",
			NoColor:         false,
			Animate:         false,
			AnimationFrames: 12,
			ShowProjection:  true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.pricing-calc.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pricing-calc.json"
	}
	return filepath.Join(homeDir, ".pricing-calc.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("cannot read config", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("invalid config", err).WithContext("path", path)
	}

	if config.Output.AnimationFrames <= 0 {
		config.Output.AnimationFrames = Default().Output.AnimationFrames
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
