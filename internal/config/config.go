// Package config loads the optional .typeweaver.yml configuration file.
// Command-line flags take precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for typeweaver.
type Config struct {
	// Package is the package name used in generated Go code.
	Package string `yaml:"package"`
	// RootName is the name given to the root type.
	RootName string `yaml:"root_name"`
	// Targets restricts which outputs are generated when no target is given
	// on the command line. Empty means all targets.
	Targets []string `yaml:"targets"`
	// Format runs go/format on generated Go code.
	Format bool `yaml:"format"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Package:  "main",
		RootName: "RootType",
		Format:   true,
	}
}

// LoadConfig loads configuration from a YAML file. Values absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and
// its parents. Returns "" when none exists.
func FindConfigFile() string {
	configNames := []string{".typeweaver.yml", ".typeweaver.yaml", "typeweaver.yml", "typeweaver.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}
