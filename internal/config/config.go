// Package config holds the liftplan configuration: one root Config of
// per-concern sections with YAML tags, defaults via DefaultConfig, and an
// optional file overlay. Flags win over file values; the CLI applies them
// after Load.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig tunes the search driver and the join pipeline.
type SearchConfig struct {
	Heuristic     string `yaml:"heuristic"`      // blind, goalcount
	JoinOrder     string `yaml:"join_order"`     // declared, smallest-first
	Workers       int    `yaml:"workers"`        // parallel heuristic evaluation; <=1 sequential
	MaxExpansions int    `yaml:"max_expansions"` // 0 = unbounded
}

// StoreConfig configures the plan archive.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures the category loggers.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the defaults used when no file or flag overrides
// a value.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Heuristic: "goalcount",
			JoinOrder: "smallest-first",
			Workers:   1,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    ".liftplan/runs.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
