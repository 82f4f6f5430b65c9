package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/bindery/pkg/adapters/fs"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-corpus configuration file name.
// The fs adapter owns the name so List can skip it during corpus walks.
const ConfigFile = fs.ConfigFile

// LintConfig holds the corpus-level lint settings.
type LintConfig struct {
	// Include limits linting to matching document IDs (doublestar globs).
	Include []string `yaml:"include"`
	// Exclude removes matching document IDs after include filtering.
	Exclude []string `yaml:"exclude"`
	// Disabled lists rule IDs to skip (e.g. ["FM05"]).
	Disabled []string `yaml:"disabled"`
	// FailOn is "error" (default) or "warning".
	FailOn string `yaml:"fail_on"`
}

// Config is the structure of bindery.yaml.
type Config struct {
	Lint LintConfig `yaml:"lint"`
}

// LoadConfig reads bindery.yaml from the corpus root.
// A missing file yields the zero config, not an error.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	return &cfg, nil
}
