// Package config loads optional code-generation tuning for eelic.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the frame-layout and naming constants the final generator
// otherwise treats as fixed numbers.
type Config struct {
	Frame struct {
		HeaderBytes int `toml:"header_bytes"`
		SlotBytes   int `toml:"slot_bytes"`
	} `toml:"frame"`

	Codegen struct {
		TempPrefix string `toml:"temp_prefix"`
	} `toml:"codegen"`
}

// DefaultConfig returns the configuration eelic uses when no .eelic.toml
// is present: a 12-byte reserved header (return address, static link,
// return-value pointer) and a 4-byte offset stride.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Frame.HeaderBytes = 12
	cfg.Frame.SlotBytes = 4
	cfg.Codegen.TempPrefix = "T_"
	return cfg
}

// Load reads ".eelic.toml" from the given source directory, falling back
// to DefaultConfig when the file does not exist.
func Load(sourceDir string) (*Config, error) {
	return LoadFrom(filepath.Join(sourceDir, ".eelic.toml"))
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
