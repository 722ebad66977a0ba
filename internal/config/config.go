// Package config loads the optional linkscan configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the linkscan configuration. Every field has a working
// default; the file only needs to exist when defaults are not wanted, and
// command-line flags override whatever is loaded here.
type Config struct {
	Scan    ScanSettings    `yaml:"scan"`
	Logging LoggingSettings `yaml:"logging"`
}

// ScanSettings contains walk defaults.
type ScanSettings struct {
	FollowSymlinks  bool     `yaml:"follow_symlinks"`
	ShowHidden      bool     `yaml:"show_hidden"`
	DetectHardlinks bool     `yaml:"detect_hardlinks"`
	Exclude         []string `yaml:"exclude"`
	MaxDepth        int      `yaml:"max_depth"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanSettings{
			FollowSymlinks:  true,
			ShowHidden:      true,
			DetectHardlinks: true,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// DefaultPath returns the conventional config file location, or "" when no
// user config directory is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linkscan", "config.yaml")
}

// Load reads the config file at path, layered over the defaults. An empty
// path means the conventional location; a missing file there is not an
// error, but an explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Scan.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.Scan.MaxDepth)
	}
	return nil
}
