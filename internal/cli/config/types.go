// Package config provides configuration management for the sqlinc CLI.
//
// Configuration is layered with koanf: built-in defaults, then sqlinc.yaml,
// then SQLINC_* environment variables, then explicitly set flags.
package config

import (
	"github.com/leapstack-labs/sqlinc/internal/envconfig"
	"github.com/leapstack-labs/sqlinc/internal/registry"
)

// Config holds all CLI configuration options.
type Config struct {
	ConfigsDir   string            `koanf:"configs_dir"`
	RegistryFile string            `koanf:"registry_file"`
	Vars         map[string]string `koanf:"vars"`
	OutputFormat string            `koanf:"output"`
	LogLevel     string            `koanf:"log_level"`
	Verbose      bool              `koanf:"verbose"`

	// Inline registry, used when neither the environment settings nor
	// registry_file provide one.
	GCP     registry.GCPConfig         `koanf:"gcp"`
	Sources map[string]registry.Source `koanf:"sources"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the sqlinc.yaml that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Environment returns the selected environment name.
func (c *Config) Environment() string {
	return envconfig.EnvFromVars(c.Vars)
}

// HasInlineRegistry reports whether sqlinc.yaml defines a registry.
func (c *Config) HasInlineRegistry() bool {
	return c.GCP.Project.ID != "" || len(c.Sources) > 0
}

// InlineDefinition returns the registry definition from sqlinc.yaml.
func (c *Config) InlineDefinition() registry.Definition {
	return registry.Definition{GCP: c.GCP, Sources: c.Sources}
}

// Default configuration values.
const (
	ConfigFileName  = "sqlinc.yaml"
	DefaultConfigs  = "includes/configs"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel = "warn"
	EnvPrefix       = "SQLINC_"
)
