// Package config loads the CLI's optional run configuration: which
// diagnostic severities are treated as fatal, and the default output
// format, from a bahasapasc.yaml file.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the decoded shape of bahasapasc.yaml.
type Config struct {
	// FatalSeverities lists diagnostic severities ("warning", "syntax",
	// "semantic") that cause the CLI to exit non-zero. Syntax errors are
	// always fatal regardless of this list, since parsing cannot continue
	// past one; listing it here is accepted but redundant.
	FatalSeverities []string `yaml:"fatalSeverities"`

	// OutputFormat is "text" (default) or "json".
	OutputFormat string `yaml:"outputFormat"`

	// Color enables ANSI diagnostic coloring in text output.
	Color bool `yaml:"color"`
}

// Default returns the configuration the CLI uses when no file is found.
func Default() Config {
	return Config{
		FatalSeverities: []string{"syntax", "semantic"},
		OutputFormat:    "text",
		Color:           true,
	}
}

// Load reads and decodes path. A missing file is not an error: Load
// returns Default() so the CLI works with zero configuration present.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsFatal reports whether severity should cause a non-zero CLI exit code.
func (c Config) IsFatal(severity string) bool {
	if severity == "syntax" {
		return true
	}
	for _, s := range c.FatalSeverities {
		if s == severity {
			return true
		}
	}
	return false
}
