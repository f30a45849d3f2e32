package src

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig holds defaults that can be supplied from a YAML file instead
// of flags. Flags that were set explicitly always win over file values.
type FileConfig struct {
	Model     string `yaml:"model"`
	Subsample int    `yaml:"subsample"`
	Threads   int    `yaml:"threads"`
}

// LoadFileConfig reads and parses a YAML defaults file.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches the standard locations for a defaults file and
// returns empty string when none exists (non-fatal).
func FindConfigFile() string {
	locations := []string{
		"video-quality.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "video-quality", "config.yaml"),
	}
	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
