package domain

import (
	"fmt"
	"slices"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// ValidLogLevels enumerates accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidOutputs enumerates accepted output values.
var ValidOutputs = []string{OutputText, OutputJSON}

// ProjectConfig holds settings loaded from .modcheck.yaml and the environment.
type ProjectConfig struct {
	Catalog  string `yaml:"catalog"   json:"catalog,omitempty"   env:"MODCHECK_CATALOG"`
	LogLevel string `yaml:"log_level" json:"log_level,omitempty" env:"MODCHECK_LOG_LEVEL"`
	Output   string `yaml:"output"    json:"output,omitempty"    env:"MODCHECK_OUTPUT"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		LogLevel: "warn",
		Output:   OutputText,
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.LogLevel != "" && !slices.Contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	if c.Output != "" && !slices.Contains(ValidOutputs, c.Output) {
		return fmt.Errorf("unknown output %q (valid: text, json)", c.Output)
	}
	return nil
}

// WithDefaults fills unset fields from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	def := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	return c
}
