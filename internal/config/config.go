// Package config provides run configuration for the transpiler.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds configuration for a transpiler invocation. Zero values fall
// back to the defaults, so a partial xcpp.toml only overrides what it names.
type Config struct {
	// FallbackType is the integer type unresolved source types default to.
	FallbackType string `toml:"fallback_type"`

	// Types maps project-specific type spellings (typedef names) onto
	// builtin target spellings, e.g. pin_t = "uint8_t".
	Types map[string]string `toml:"types"`

	// Jobs is the number of translation units processed in parallel.
	Jobs int `toml:"jobs"`

	// Header overrides the fixed comment block of generated files.
	Header string `toml:"header"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FallbackType: "int",
		Jobs:         runtime.NumCPU(),
	}
}

// Load reads a TOML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadIfPresent loads the config file when it exists and falls back to the
// defaults when it does not.
func LoadIfPresent(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.FallbackType == "" {
		c.FallbackType = "int"
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
}
