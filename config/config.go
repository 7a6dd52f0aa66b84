// Package config implements sparqlee's configuration file parsing and
// validation, following the shape of the teacher's config package
// (Config struct + ParseConfig + validate-and-inject-defaults) adapted to
// YAML via gopkg.in/yaml.v3 instead of the teacher's embedded-JSON style.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultEvaluationTimeout = 30 * time.Second
)

// Config is the configuration sparqlee's CLI and any embedding host loads
// to construct a topdown.Hooks and a logging.Logger (spec.md §6).
type Config struct {
	// BaseIRI is the base IRI used to resolve IRI()'s relative-IRI argument
	// when the caller doesn't supply a more specific ResolveIRI hook.
	BaseIRI string `yaml:"base_iri"`
	// LogLevel is one of "error", "warn", "info", "debug".
	LogLevel string `yaml:"log_level"`
	// LogFormat is one of "json" or "text".
	LogFormat string `yaml:"log_format"`
	// EvaluationTimeout bounds a single Evaluate call via context.
	EvaluationTimeout time.Duration `yaml:"evaluation_timeout"`
}

// ParseConfig returns a valid Config with defaults injected for any field
// left unset in raw.
func ParseConfig(raw []byte) (*Config, error) {
	var result Config
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	result.injectDefaults()
	if err := result.validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	c := &Config{}
	c.injectDefaults()
	return c
}

func (c *Config) injectDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
	if c.EvaluationTimeout == 0 {
		c.EvaluationTimeout = defaultEvaluationTimeout
	}
}

func (c Config) validate() error {
	switch c.LogLevel {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config: invalid log_format %q", c.LogFormat)
	}
	if c.EvaluationTimeout < 0 {
		return fmt.Errorf("config: evaluation_timeout must not be negative")
	}
	return nil
}
