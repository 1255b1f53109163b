// Package config provides configuration loading from loko.toml files.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the loko.toml configuration values for a document compiler
// project.
type Config struct {
	// Paths configuration
	SourceDir string // Default: "." (directory holding main.md)
	OutputDir string // Default: "./dist"

	// Introspection configuration: layout fixpoint behavior.
	MaxLayoutIterations int    // Default: 5
	FontBookPath        string // Default: "" (fontbook.toml at project root)

	// Watch configuration
	HotReload  bool // Default: true
	DebounceMs int  // Default: 500
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:           ".",
		OutputDir:           "./dist",
		MaxLayoutIterations: 5,
		HotReload:           true,
		DebounceMs:          500,
	}
}

// Loader implements TOML configuration loading, generalized from the
// teacher's project+global loko.toml merge down to the fields the compiler
// core actually consumes.
type Loader struct {
	globalConfigPath string // Path to global config (~/.loko/config.toml)
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	globalPath := ""
	if homeDir != "" {
		globalPath = filepath.Join(homeDir, ".loko", "config.toml")
	}
	return &Loader{
		globalConfigPath: globalPath,
	}
}

// tomlConfig represents the structure of loko.toml file.
type tomlConfig struct {
	Paths         pathsSection         `toml:"paths"`
	Watch         watchSection         `toml:"watch"`
	Introspection introspectionSection `toml:"introspection"`
}

type pathsSection struct {
	Source string `toml:"source"`
	Output string `toml:"output"`
}

type watchSection struct {
	HotReload *bool `toml:"hot_reload"`
	Debounce  *int  `toml:"debounce_ms"`
}

type introspectionSection struct {
	MaxIterations *int   `toml:"max_iterations"`
	FontBookPath  string `toml:"fontbook_path"`
}

// LoadConfig reads loko.toml and applies defaults.
// It reads both global (~/.loko/config.toml) and project-local (./loko.toml) configs,
// with project-local overriding global settings.
func (l *Loader) LoadConfig(ctx context.Context, projectRoot string) (*Config, error) {
	config := DefaultConfig()

	if l.globalConfigPath != "" {
		if _, err := os.Stat(l.globalConfigPath); err == nil {
			if err := l.loadFromFile(l.globalConfigPath, config); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	projectConfigPath := filepath.Join(projectRoot, "loko.toml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := l.loadFromFile(projectConfigPath, config); err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
	}

	return config, nil
}

// loadFromFile loads configuration from a TOML file into the config.
func (l *Loader) loadFromFile(path string, config *Config) error {
	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	if tc.Paths.Source != "" {
		config.SourceDir = tc.Paths.Source
	}
	if tc.Paths.Output != "" {
		config.OutputDir = tc.Paths.Output
	}
	if tc.Watch.HotReload != nil {
		config.HotReload = *tc.Watch.HotReload
	}
	if tc.Watch.Debounce != nil {
		config.DebounceMs = *tc.Watch.Debounce
	}
	if tc.Introspection.MaxIterations != nil {
		config.MaxLayoutIterations = *tc.Introspection.MaxIterations
	}
	if tc.Introspection.FontBookPath != "" {
		config.FontBookPath = tc.Introspection.FontBookPath
	}

	return nil
}

// SaveConfig persists configuration to loko.toml.
func (l *Loader) SaveConfig(ctx context.Context, projectRoot string, config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	tc := tomlConfig{
		Paths: pathsSection{
			Source: config.SourceDir,
			Output: config.OutputDir,
		},
		Watch: watchSection{
			HotReload: &config.HotReload,
			Debounce:  &config.DebounceMs,
		},
		Introspection: introspectionSection{
			MaxIterations: &config.MaxLayoutIterations,
			FontBookPath:  config.FontBookPath,
		},
	}

	if err := os.MkdirAll(projectRoot, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	configPath := filepath.Join(projectRoot, "loko.toml")
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	f.WriteString("# loko project configuration\n")
	f.WriteString("# See https://github.com/madstone-tech/loko for documentation\n\n")

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(tc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
