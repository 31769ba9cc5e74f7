// Package config loads the mimp configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Output OutputConfig `toml:"output"`
	REPL   REPLConfig   `toml:"repl"`
}

// StoreConfig holds run persistence settings
type StoreConfig struct {
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// OutputConfig holds terminal output settings
type OutputConfig struct {
	Color string `toml:"color"` // auto, always, never
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	HistoryFile string `toml:"history_file"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".mimp", "config.toml")
}

// Load loads configuration from a TOML file. A missing file is not an
// error; the defaults apply.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(homeDir(), ".mimp", "runs.db")
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = filepath.Join(homeDir(), ".mimp_history")
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
