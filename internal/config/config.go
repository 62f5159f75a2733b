package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// Config is the optional carbonpilot configuration file. Every section is
// optional; zero values fall back to the documented defaults, so a partial
// file only overrides what it names.
type Config struct {
	Logging    logging.Config   `yaml:"logging"`
	Compliance ComplianceConfig `yaml:"compliance"`
}

// ComplianceConfig groups the compliance thresholds and scoring policy.
type ComplianceConfig struct {
	Thresholds ComplianceThresholds `yaml:"thresholds"`
	Policy     CompliancePolicy     `yaml:"policy"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Logging: logging.DefaultConfig(),
		Compliance: ComplianceConfig{
			Thresholds: DefaultComplianceThresholds(),
			Policy:     DefaultCompliancePolicy(),
		},
	}
}

// Load reads and validates a YAML configuration file. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is a user-supplied CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks every section. Sections are validated by normalizing them;
// normalized values are not kept here, the engines re-normalize on use.
func (c *Config) Validate() error {
	defaults := logging.DefaultConfig()
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Format
	}
	if _, err := c.Compliance.Thresholds.Normalize(); err != nil {
		return err
	}
	if _, err := c.Compliance.Policy.Normalize(); err != nil {
		return err
	}
	return nil
}
