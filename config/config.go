// Package config loads the optional .domaingen.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lex00/domaingen/discover"
	"github.com/lex00/domaingen/generate"
	"github.com/lex00/domaingen/lint"
)

// Filename is the standard name for domaingen configuration files.
const Filename = ".domaingen.yaml"

// Config represents the domaingen project configuration.
type Config struct {
	// Output is the file name generated into each package.
	Output string `yaml:"output,omitempty"`
	// ContractsImport is the import path of the contract interfaces.
	ContractsImport string `yaml:"contracts_import,omitempty"`
	// Concurrency bounds how many packages are generated at once.
	Concurrency int `yaml:"concurrency,omitempty"`
	// Lint configures diagnostics reporting.
	Lint LintConfig `yaml:"lint,omitempty"`
}

// LintConfig represents linting-related configuration.
type LintConfig struct {
	DisabledRules []string `yaml:"disabled_rules,omitempty"`
	MinSeverity   string   `yaml:"min_severity,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Output: discover.DefaultOutputFile,
		Lint:   LintConfig{MinSeverity: lint.SeverityWarning.String()},
	}
}

// Load loads from the current directory, walking up to find .domaingen.yaml.
func Load() (*Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads starting from the specified directory, walking up the tree.
// When no file is found the defaults are returned with an empty path.
func LoadFrom(startDir string) (*Config, string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	currentDir := absDir
	for {
		configPath := filepath.Join(currentDir, Filename)
		if _, err := os.Stat(configPath); err == nil {
			cfg, err := LoadFile(configPath)
			if err != nil {
				return nil, "", err
			}
			return cfg, configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return Default(), "", nil
		}
		currentDir = parentDir
	}
}

// LoadFile loads from a specific path. Unknown keys are rejected and unset
// values take their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values a file may set.
func (c *Config) Validate() error {
	if c.Output != "" {
		if filepath.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
			return fmt.Errorf("output %q must be a non-test .go file name without directories", c.Output)
		}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	for _, id := range c.Lint.DisabledRules {
		if _, ok := lint.LookupRule(id); !ok {
			return fmt.Errorf("unknown lint rule %q", id)
		}
	}
	if c.Lint.MinSeverity != "" {
		if _, err := lint.ParseSeverity(c.Lint.MinSeverity); err != nil {
			return err
		}
	}
	return nil
}

// GeneratorConfig returns the generator settings.
func (c *Config) GeneratorConfig() generate.Config {
	return generate.Config{
		OutputFile:      c.Output,
		ContractsImport: c.ContractsImport,
		Concurrency:     c.Concurrency,
	}
}

// LintOptions returns the diagnostics settings.
func (c *Config) LintOptions() *lint.Config {
	sev, err := lint.ParseSeverity(c.Lint.MinSeverity)
	if err != nil {
		sev = lint.SeverityWarning
	}
	return &lint.Config{
		DisabledRules: append([]string(nil), c.Lint.DisabledRules...),
		MinSeverity:   sev,
		OutputFile:    c.Output,
	}
}
