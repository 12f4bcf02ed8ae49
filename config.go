package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RefineConfig toggles the local-search sweeps of the selection optimizer.
type RefineConfig struct {
	// Remove tries dropping each selected item, most disliked first.
	Remove bool `yaml:"remove"`
	// Add tries adding each unselected item.
	Add bool `yaml:"add"`
}

// Config holds the search tuning parameters.
type Config struct {
	// Order is the project priority used by the scheduler.
	Order    string       `yaml:"order" validate:"oneof=density score"`
	Refine   RefineConfig `yaml:"refine"`
	LogLevel string       `yaml:"log_level" validate:"oneof=debug info warn error"`
}

func DefaultConfig() Config {
	return Config{
		Order:    OrderDensity,
		Refine:   RefineConfig{Remove: true, Add: true},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var configValidator = validator.New()

func (c Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
