// Package config provides configuration loading for omeganet.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexshd/omeganet"
	"gopkg.in/yaml.v3"
)

// Config contains all omeganet settings.
type Config struct {
	// Seed drives the shared random source. 0 seeds from the clock.
	Seed int64 `yaml:"seed"`

	Population PopulationConfig `yaml:"population"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`

	// Reference is the subject → attribute → value table used for scoring.
	Reference map[string]map[string]float64 `yaml:"reference"`
}

// PopulationConfig lists the participants created at startup.
type PopulationConfig struct {
	Agents   []string `yaml:"agents"`
	Entities int      `yaml:"entities"`
	Facts    []string `yaml:"facts"`
}

// SimulationConfig tunes the loop.
type SimulationConfig struct {
	// Workers is the drift fan-out width. 1 keeps drift sequential and
	// the run reproducible for a given seed.
	Workers int `yaml:"workers"`

	// MaxTicks bounds a run. 0 runs until the population is stable.
	MaxTicks int `yaml:"max_ticks"`

	// TickDelay is the minimum spacing between ticks.
	TickDelay time.Duration `yaml:"tick_delay"`

	// StabilityWindow is the number of consecutive quiet ticks that ends a run.
	StabilityWindow int `yaml:"stability_window"`
}

// LoggingConfig configures the operational logger.
type LoggingConfig struct {
	// Level is one of "debug", "info" (default), "warn", "error".
	Level string `yaml:"level"`
}

// OutputConfig names where results go.
type OutputConfig struct {
	// SummaryPath receives the end-of-run JSON summary. Empty disables it.
	SummaryPath string `yaml:"summary_path"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns a Config describing the standard ten-agent population.
func Default() *Config {
	return &Config{
		Population: PopulationConfig{
			Agents:   append([]string(nil), omeganet.DefaultAgentNames...),
			Entities: omeganet.DefaultEntityCount,
			Facts:    append([]string(nil), omeganet.DefaultFacts...),
		},
		Simulation: SimulationConfig{
			Workers:         1,
			MaxTicks:        omeganet.DefaultRunConfig().MaxTicks,
			StabilityWindow: omeganet.DefaultStabilityWindow,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			SummaryPath: "omeganet_log.json",
		},
		Reference: copyReference(omeganet.DefaultReferenceData),
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
// Order: defaults -> file -> environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			// A reference table in the file replaces the default one.
			defaults := cfg.Reference
			cfg.Reference = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
			if cfg.Reference == nil {
				cfg.Reference = defaults
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Population.Entities < 0 {
		return fmt.Errorf("entities must be non-negative, got %d", c.Population.Entities)
	}

	seen := make(map[string]bool, len(c.Population.Agents))
	for _, name := range c.Population.Agents {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("agent names must not be empty")
		}
		if seen[key] {
			return fmt.Errorf("duplicate agent name: %s", name)
		}
		seen[key] = true
	}

	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Simulation.Workers)
	}
	if c.Simulation.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be non-negative, got %d", c.Simulation.MaxTicks)
	}
	if c.Simulation.TickDelay < 0 {
		return fmt.Errorf("tick_delay must be non-negative, got %v", c.Simulation.TickDelay)
	}
	if c.Simulation.StabilityWindow < 1 {
		return fmt.Errorf("stability_window must be at least 1, got %d", c.Simulation.StabilityWindow)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparseable numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OMEGANET_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}

	if v := os.Getenv("OMEGANET_MAX_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.MaxTicks = n
		}
	}

	if v := os.Getenv("OMEGANET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func copyReference(src map[string]map[string]float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(src))
	for subject, attrs := range src {
		inner := make(map[string]float64, len(attrs))
		for k, v := range attrs {
			inner[k] = v
		}
		out[subject] = inner
	}
	return out
}
