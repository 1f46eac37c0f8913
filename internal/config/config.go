// Package config loads project-level settings from ccg.yml.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SummarizerConfig selects the overview summarizer backend.
type SummarizerConfig struct {
	Provider string `yaml:"provider,omitempty"` // "gemini" or "none"
	Model    string `yaml:"model,omitempty"`
}

// ProjectConfig holds settings loaded from ccg.yml. Zero values fall back to
// built-in defaults at the point of use.
type ProjectConfig struct {
	OutputPath      string           `yaml:"outputPath,omitempty"`
	ExcludeDirs     []string         `yaml:"excludeDirs,omitempty"`
	DiagramMaxNodes int              `yaml:"diagramMaxNodes,omitempty"`
	Summarizer      SummarizerConfig `yaml:"summarizer,omitempty"`
	Verbose         bool             `yaml:"verbose,omitempty"`
}

// Load attempts to read ccg.yml or ccg.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"ccg.yml", "ccg.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
