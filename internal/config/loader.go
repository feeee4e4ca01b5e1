package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*SimulatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg SimulatorConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads the optional file at path, overlays the
// environment and applies default values. An empty path skips the file.
func LoadWithDefaults(path string, lookup LookupFunc) (*SimulatorConfig, error) {
	cfg := &SimulatorConfig{}
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates. Store
// credentials are only required when events will be persisted.
func LoadAndValidate(path string, lookup LookupFunc, dryRun bool) (*SimulatorConfig, error) {
	cfg, err := LoadWithDefaults(path, lookup)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if !dryRun {
		if err := cfg.Database.validate(cfg.envSet); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
