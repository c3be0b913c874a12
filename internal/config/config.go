package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete configuration.
type Config struct {
	TypeMappings  map[string]string `yaml:"typeMappings" json:"typeMappings"`
	SentinelTypes []string          `yaml:"-" json:"-"`
	Options       Options           `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	Package        string `yaml:"package" json:"package"`
	OutputDir      string `yaml:"outputDir" json:"outputDir"`
	TagKey         string `yaml:"tagKey" json:"tagKey"`
	Namespace      string `yaml:"namespace" json:"namespace"`
	Sentinel       string `yaml:"sentinel" json:"sentinel"`
	Opaque         string `yaml:"opaque" json:"opaque"`
	Template       string `yaml:"template" json:"template"`
	EnumTests      bool   `yaml:"enumTests" json:"enumTests"`
	ResolveChoices bool   `yaml:"resolveChoices" json:"resolveChoices"`
	ResponseIndex  bool   `yaml:"responseIndex" json:"responseIndex"`
	Manifest       bool   `yaml:"manifest" json:"manifest"`
	Workers        int    `yaml:"workers" json:"workers"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		TypeMappings:  DefaultTypeMappings(),
		SentinelTypes: DefaultSentinelTypes(),
		Options:       DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	// Options start from the current values so absent keys keep them.
	loaded := Config{Options: c.Options}
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	// Loaded mappings extend and override the defaults; defaults are never removed.
	for k, v := range loaded.TypeMappings {
		c.TypeMappings[k] = v
	}
	c.Options = loaded.Options
}

// Validate checks that the options can produce a compilable package.
func (c *Config) Validate() error {
	o := c.Options
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("%w: package %q is not a Go identifier", ErrInvalidConfig, o.Package)
	}
	if o.OutputDir == "" {
		return fmt.Errorf("%w: outputDir is required", ErrInvalidConfig)
	}
	if o.TagKey == "" {
		return fmt.Errorf("%w: tagKey is required", ErrInvalidConfig)
	}
	if o.Sentinel == "" || o.Opaque == "" {
		return fmt.Errorf("%w: sentinel and opaque types are required", ErrInvalidConfig)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, o.Workers)
	}
	for k, v := range c.TypeMappings {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: empty mapping for schema type %q", ErrInvalidConfig, k)
		}
	}
	return nil
}

// MapType maps a schema type to its Go type using the configured mappings.
func (c *Config) MapType(schemaType string) (string, bool) {
	mapped, ok := c.TypeMappings[schemaType]
	return mapped, ok
}

// IsSentinel reports whether schemaType is deliberately left unresolved.
func (c *Config) IsSentinel(schemaType string) bool {
	for _, t := range c.SentinelTypes {
		if t == schemaType {
			return true
		}
	}
	return false
}
