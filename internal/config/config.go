// Package config provides configuration loading and management for
// nifti-gridview. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Window parameters
	Window struct {
		// Width and Height are the initial main window dimensions
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`

	// Display parameters seed the grid drawing controls
	Display struct {
		// Colormap is the initially selected colormap name
		Colormap string `yaml:"colormap"`

		// Margin is the padding width between grid cells in pixels
		Margin int `yaml:"margin"`

		// Background is the fill value for margins and offset slices
		Background uint8 `yaml:"background"`

		// ContourThickness is the stroke width for mask outlines
		ContourThickness int `yaml:"contourThickness"`
	} `yaml:"display"`

	// Export parameters
	Export struct {
		// Format is the image format written by the exporter, png or jpeg
		Format string `yaml:"format"`
	} `yaml:"export"`

	// Logging parameters
	Logging struct {
		// Level is one of debug, info, warn, error
		Level string `yaml:"level"`

		// File, when set, receives JSON log lines instead of the console
		File string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = 1200
	cfg.Window.Height = 800

	cfg.Display.Colormap = "Default"
	cfg.Display.Margin = 1
	cfg.Display.Background = 0
	cfg.Display.ContourThickness = 2

	cfg.Export.Format = "png"

	cfg.Logging.Level = "info"
	cfg.Logging.File = ""

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "nifti-gridview.yaml"
	}
	return filepath.Join(base, "nifti-gridview", "config.yaml")
}
