package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "walker.yaml"

// Load reads the config file at path and merges it over the defaults.
// A missing file is not an error, the defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	err := loadFromFile(cfg, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// use defaults

	case err != nil:
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}
