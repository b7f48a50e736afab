// Package config loads the acmatch command's pattern set and settings from
// a YAML file and the environment.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/coregx/acmatch"
	"github.com/coregx/acmatch/internal/logging"
)

// Config holds all configuration for the acmatch command.
type Config struct {
	// Match on runes instead of bytes. Offsets become rune offsets.
	Runes bool `yaml:"runes"`

	// Number of files scanned concurrently. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" env:"ACMATCH_WORKERS"`

	LogLevel string `yaml:"log_level" env:"ACMATCH_LOG_LEVEL"`

	Patterns []Pattern `yaml:"patterns"`

	Prefilter PrefilterConfig `yaml:"prefilter"`
}

// Pattern is one literal to search for.
type Pattern struct {
	Name    string `yaml:"name"`
	Text    string `yaml:"text"`
	Enabled bool   `yaml:"enabled"`
}

// UnmarshalYAML decodes a pattern, treating a missing enabled key as true.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	type plain Pattern
	raw := plain{Enabled: true}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = Pattern(raw)
	return nil
}

// Label returns the name printed for matches of p.
func (p Pattern) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Text
}

// PrefilterConfig tunes byte-mode acceleration.
type PrefilterConfig struct {
	StartBytes   bool `yaml:"start_bytes"`
	Reject       bool `yaml:"reject"`
	RejectMinLen int  `yaml:"reject_min_len"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	lib := acmatch.DefaultConfig()
	return &Config{
		LogLevel: "warn",
		Prefilter: PrefilterConfig{
			StartBytes:   lib.EnablePrefilter,
			Reject:       lib.EnableRejectFilter,
			RejectMinLen: lib.RejectMinLen,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment, in that order. An empty path falls back to
// $ACMATCH_CONFIG; if that is unset too no file is read.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("ACMATCH_CONFIG")
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load from environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if level := os.Getenv("ACMATCH_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if workers := os.Getenv("ACMATCH_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return errors.Wrapf(err, "invalid ACMATCH_WORKERS %q", workers)
		}
		cfg.Workers = n
	}
	return nil
}

// Validate checks the configuration for values the scanner cannot use.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, p := range c.Patterns {
		if p.Enabled && p.Text == "" {
			return errors.Errorf("pattern %d (%q) has empty text", i, p.Name)
		}
	}
	return c.Library().Validate()
}

// Library returns the automaton configuration derived from c.
func (c *Config) Library() acmatch.Config {
	return acmatch.Config{
		EnablePrefilter:    c.Prefilter.StartBytes,
		EnableRejectFilter: c.Prefilter.Reject,
		RejectMinLen:       c.Prefilter.RejectMinLen,
	}
}

// Enabled returns the enabled patterns in file order.
func (c *Config) Enabled() []Pattern {
	var out []Pattern
	for _, p := range c.Patterns {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// AddLiterals appends command-line patterns, each named by its own text.
func (c *Config) AddLiterals(texts ...string) {
	for _, t := range texts {
		c.Patterns = append(c.Patterns, Pattern{Text: t, Enabled: true})
	}
}
