// Package config resolves exporter configuration from the config file and
// environment variables. Environment wins over file, file wins over
// defaults.
package config

import "os"

// Defaults.
const (
	DefaultRunsDSN   = "runs.db"
	DefaultSourceURL = "https://www.linkedin.com/feed/"
)

// Config is the resolved exporter configuration.
type Config struct {
	// RunsDSN is the path of the export-run history database.
	RunsDSN string
	// OutputDir is where rendered documents are written. Empty means the
	// current directory.
	OutputDir string
	// SourceURL is the export origin reference written into document
	// headers and run records.
	SourceURL string
	// SelectorsFile optionally points at a selector-registry override file.
	SelectorsFile string
}

// Getenv returns the value of an environment variable or a default value.
func Getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load resolves configuration: defaults, then ~/.feedexport/config.yaml,
// then FEEDEXPORT_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		RunsDSN:   DefaultRunsDSN,
		SourceURL: DefaultSourceURL,
	}

	fileCfg, err := LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		fileCfg.apply(cfg)
	}

	cfg.RunsDSN = Getenv("FEEDEXPORT_RUNS_DSN", cfg.RunsDSN)
	cfg.OutputDir = Getenv("FEEDEXPORT_OUTPUT_DIR", cfg.OutputDir)
	cfg.SourceURL = Getenv("FEEDEXPORT_SOURCE_URL", cfg.SourceURL)
	cfg.SelectorsFile = Getenv("FEEDEXPORT_SELECTORS_FILE", cfg.SelectorsFile)

	return cfg, nil
}
