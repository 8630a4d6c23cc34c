// Package config handles reading and writing .zero-setup-biome/config.yaml
// and the environment signals the CLI passes down explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Relaxed-rules policies.
const (
	RelaxedAsk    = "ask"
	RelaxedAlways = "always"
	RelaxedNever  = "never"
)

// Config is the top-level structure for .zero-setup-biome/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Migrate MigrateConfig `yaml:"migrate"`
	Audit   AuditConfig   `yaml:"audit"`
}

// MigrateConfig controls the migrate command.
type MigrateConfig struct {
	MinimumBiomeVersion   string   `yaml:"minimum_biome_version"`
	BiomePackage          string   `yaml:"biome_package"`
	RelaxedRules          string   `yaml:"relaxed_rules"` // "ask" | "always" | "never"
	ExtraGeneratedFolders []string `yaml:"extra_generated_folders"`
}

// AuditConfig controls the local audit log.
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Dir is the tool's state directory, relative to the working directory.
const Dir = ".zero-setup-biome"

const configFile = "config.yaml"

// ReadConfig reads .zero-setup-biome/config.yaml from dir.
// Returns an error wrapping os.ErrNotExist when the file is missing.
// Fields left out of the file keep their DefaultConfig values.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, Dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault returns the config in dir, or defaults when the file is
// missing. A malformed file returns defaults together with the parse error
// so the caller can warn about it.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return DefaultConfig(), err
}

// WriteConfig writes cfg to .zero-setup-biome/config.yaml in dir.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, Dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Migrate.RelaxedRules {
	case RelaxedAsk, RelaxedAlways, RelaxedNever:
	default:
		return fmt.Errorf("invalid migrate.relaxed_rules %q (want ask, always or never)", c.Migrate.RelaxedRules)
	}
	if c.Migrate.BiomePackage == "" {
		return errors.New("migrate.biome_package must not be empty")
	}
	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Migrate: MigrateConfig{
			MinimumBiomeVersion: "1.7.0",
			BiomePackage:        "@biomejs/biome",
			RelaxedRules:        RelaxedAsk,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}
