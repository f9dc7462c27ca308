// Package config loads the optional run configuration of iismap.
//
// A configuration file is YAML:
//
//	version: "1"
//	warnings_as_errors: false
//	suppress: [unknown_bits]
//	output:
//	  format: yaml
//	log:
//	  debug: false
//	  file: iismap.log
//
// Every key is optional. Command line flags override the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"iismap/internal/diagnostic"
	"iismap/internal/store"
)

// Config is the run configuration.
type Config struct {
	Version          string   `yaml:"version"`
	WarningsAsErrors bool     `yaml:"warnings_as_errors"`
	Suppress         []string `yaml:"suppress,omitempty"`
	Output           Output   `yaml:"output"`
	Log              Log      `yaml:"log"`
}

// Output configures where compiled tables go.
type Output struct {
	// Format is yaml or sqlite.
	Format store.Format `yaml:"format"`
}

// Log configures the logger.
type Log struct {
	Debug bool `yaml:"debug"`
	// File, when set, receives a copy of the log in a rotating file.
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse parses YAML data into a Config. Structural problems are errors;
// unknown suppressed codes are not, see Validate.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if diags := Validate(&c); diags.HasErrors() {
		return nil, fmt.Errorf("invalid config: %w", diags.Error())
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Output.Format == "" {
		c.Output.Format = store.FormatYAML
	}

	if c.Log.File != "" {
		if c.Log.MaxSizeMB == 0 {
			c.Log.MaxSizeMB = 10
		}

		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = 3
		}
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// Policy returns the diagnostic policy the configuration asks for.
func (c *Config) Policy() diagnostic.Policy {
	p := diagnostic.Policy{WarningsAsErrors: c.WarningsAsErrors}
	for _, s := range c.Suppress {
		p.Suppress = append(p.Suppress, diagnostic.Code(s))
	}

	return p
}
