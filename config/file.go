package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the structure of ~/.feedexport/config.yaml.
type FileConfig struct {
	Storage struct {
		Runs struct {
			DSN string `yaml:"dsn"`
		} `yaml:"runs"`
	} `yaml:"storage"`
	Export struct {
		OutputDir string `yaml:"output_dir"`
		SourceURL string `yaml:"source_url"`
	} `yaml:"export"`
	Selectors struct {
		File string `yaml:"file"`
	} `yaml:"selectors"`
}

// LoadConfigFile loads configuration from ~/.feedexport/config.yaml. Returns
// nil if the file doesn't exist (not an error). Returns error if the file
// exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return LoadConfigFileFrom(filepath.Join(homeDir, ".feedexport", "config.yaml"))
}

// LoadConfigFileFrom loads configuration from an explicit path. Missing file
// is not an error.
func LoadConfigFileFrom(configPath string) (*FileConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

func (f *FileConfig) apply(cfg *Config) {
	if f.Storage.Runs.DSN != "" {
		cfg.RunsDSN = f.Storage.Runs.DSN
	}
	if f.Export.OutputDir != "" {
		cfg.OutputDir = f.Export.OutputDir
	}
	if f.Export.SourceURL != "" {
		cfg.SourceURL = f.Export.SourceURL
	}
	if f.Selectors.File != "" {
		cfg.SelectorsFile = f.Selectors.File
	}
}
