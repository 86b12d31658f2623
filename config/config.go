// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ToolsConfig overrides the tool clients' service endpoints. Empty values
// keep the public endpoints.
type ToolsConfig struct {
	GeocodeBaseURL string `yaml:"geocode_base_url"`
	QuakeBaseURL   string `yaml:"quake_base_url"`
}

// Config is the quakeagent.yaml structure.
type Config struct {
	// Model is the model name requested from the provider.
	Model string `yaml:"model"`

	// BaseURL points at an OpenAI-compatible API. Empty uses the provider
	// default.
	BaseURL string `yaml:"base_url"`

	// MaxIterations caps the agent loop per question.
	MaxIterations int `yaml:"max_iterations"`

	// LogFile is where the structured run log is written.
	LogFile string `yaml:"log_file"`

	Tools ToolsConfig `yaml:"tools"`
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 15
	}
	if c.LogFile == "" {
		c.LogFile = ".logs/quakeagent.log"
	}
}

// Load reads the config file at path. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}
