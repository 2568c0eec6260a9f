// Package config loads the optional .flowlint.yml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/common-fate/flowlint/pkg/report"
	"github.com/common-fate/flowlint/pkg/rules"
)

// DefaultFile is read from the working directory if no
// config file is given explicitly.
const DefaultFile = ".flowlint.yml"

// Config for the check command. Command line flags take
// precedence over values set here.
type Config struct {
	// Checkers to run. Every checker runs if empty.
	Checkers []string `yaml:"checkers"`
	// Format of the report, e.g. "markdown".
	Format string `yaml:"format"`
	// Ignore lists CEL expressions matching diagnostics to suppress,
	// e.g. `kind == "MAGIC_NUMBER"`.
	Ignore []string `yaml:"ignore"`
	// Source annotates text reports with excerpts of the document.
	Source bool `yaml:"source"`
}

func Default() *Config {
	return &Config{
		Format: string(report.Text),
	}
}

// Load the config file at path. If path is empty, DefaultFile is
// used if it exists, and Default() otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// Parse YAML config data into cfg and validate the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = string(report.Text)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []string

	for _, name := range c.Checkers {
		if !isChecker(name) {
			errs = append(errs, fmt.Sprintf("checkers: unknown checker %q, must be one of %v", name, rules.Names))
		}
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Sprintf("format: %s", err))
	}
	for i, expr := range c.Ignore {
		if strings.TrimSpace(expr) == "" {
			errs = append(errs, fmt.Sprintf("ignore[%d]: expression is empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func isChecker(name string) bool {
	for _, n := range rules.Names {
		if n == name {
			return true
		}
	}
	return false
}
