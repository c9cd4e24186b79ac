// Package config loads picobot settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"picobot/pkg/sim"
)

// Config is the full set of tunables shared by the CLI and the viewer.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Verify  VerifyConfig  `yaml:"verify"`
	Logging LoggingConfig `yaml:"logging"`
	Animate AnimateConfig `yaml:"animate"`
}

// SimConfig bounds a single run.
type SimConfig struct {
	MaxSteps           int  `yaml:"max_steps"`
	StopOnFullCoverage bool `yaml:"stop_on_full_coverage"`
}

// VerifyConfig controls exhaustive verification.
type VerifyConfig struct {
	// Workers > 1 splits start cells across goroutines.
	Workers int `yaml:"workers"`
}

// LoggingConfig selects level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnimateConfig holds GIF export defaults.
type AnimateConfig struct {
	Scale int  `yaml:"scale"`
	Delay int  `yaml:"delay"`
	Every int  `yaml:"every"`
	Loop  bool `yaml:"loop"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			MaxSteps:           sim.DefaultMaxSteps,
			StopOnFullCoverage: true,
		},
		Verify:  VerifyConfig{Workers: 1},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Animate: AnimateConfig{Scale: 24, Delay: 8, Every: 1, Loop: true},
	}
}

// Load applies defaults, then path if it exists, then environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg = fileCfg
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Sim.MaxSteps <= 0 {
		return fmt.Errorf("sim.max_steps must be positive, got %d", c.Sim.MaxSteps)
	}
	if c.Verify.Workers < 1 {
		return fmt.Errorf("verify.workers must be at least 1, got %d", c.Verify.Workers)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}
	if c.Animate.Scale <= 0 {
		return fmt.Errorf("animate.scale must be positive, got %d", c.Animate.Scale)
	}
	if c.Animate.Delay < 0 {
		return fmt.Errorf("animate.delay must be non-negative, got %d", c.Animate.Delay)
	}
	if c.Animate.Every <= 0 {
		return fmt.Errorf("animate.every must be positive, got %d", c.Animate.Every)
	}
	return nil
}

func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("PICOBOT_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PICOBOT_MAX_STEPS: %w", err)
		}
		c.Sim.MaxSteps = n
	}
	if v := os.Getenv("PICOBOT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PICOBOT_WORKERS: %w", err)
		}
		c.Verify.Workers = n
	}
	if v := os.Getenv("PICOBOT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}
