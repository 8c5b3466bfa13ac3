package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/modcheck/modcheck/internal/domain"
)

const (
	fileName    = ".modcheck.yaml"
	envFileName = ".env"
)

// YAMLLoader implements domain.ConfigLoader by reading .modcheck.yaml and
// applying MODCHECK_* environment overrides.
type YAMLLoader struct {
	environ func() []string
}

// New creates a YAMLLoader that reads the process environment.
func New() *YAMLLoader { return &YAMLLoader{environ: os.Environ} }

// NewWithEnviron creates a YAMLLoader with a fixed environment, for tests.
func NewWithEnviron(environ []string) *YAMLLoader {
	return &YAMLLoader{environ: func() []string { return environ }}
}

// Load reads .modcheck.yaml from dir, then overlays variables from dir/.env
// and finally the process environment. A missing file is not an error.
func (l *YAMLLoader) Load(dir string) (domain.ProjectConfig, error) {
	cfg, err := readFile(filepath.Join(dir, fileName))
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	vars, err := l.environment(dir)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func readFile(path string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProjectConfig{}, nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Catch typos in the file before the environment can mask them.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

// environment merges dir/.env under the process environment.
func (l *YAMLLoader) environment(dir string) (map[string]string, error) {
	vars, err := godotenv.Read(filepath.Join(dir, envFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parsing %s: %w", envFileName, err)
		}
		vars = map[string]string{}
	}
	maps.Copy(vars, env.ToMap(l.environ()))
	return vars, nil
}
