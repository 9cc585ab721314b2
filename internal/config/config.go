// Package config loads the optional per-user configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures user-level settings for tool resolution. All fields are
// optional; the zero value is a valid configuration.
type Config struct {
	// Platform overrides the detected descriptor platform key
	// (linux, osx, windows).
	Platform string `yaml:"platform"`

	// DescriptorDir shadows embedded descriptors with local .properties files.
	DescriptorDir string `yaml:"descriptor_dir"`

	// Tools pins versions per tool name, used when no version is passed
	// explicitly on the command line.
	Tools map[string]ToolConfig `yaml:"tools"`
}

// ToolConfig holds per-tool overrides.
type ToolConfig struct {
	Version string `yaml:"version"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{Tools: map[string]ToolConfig{}}
}

// Load reads the configuration from path. A missing file yields the default
// configuration without error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]ToolConfig{}
	}
	return cfg, nil
}

// Version returns the pinned version for a tool, or "" when none is set.
func (c Config) Version(tool string) string {
	return c.Tools[tool].Version
}
