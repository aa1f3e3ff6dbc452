package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvOverrides loads the configuration and then applies APPRAISE_*
// environment variables, which take precedence over the file. An empty path
// starts from the defaults.
func LoadWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("APPRAISE_RULES_FILE"); val != "" {
		cfg.RulesFile = val
	}
	if val := os.Getenv("APPRAISE_LOG_LEVEL"); val != "" {
		cfg.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("APPRAISE_LOG_FORMAT"); val != "" {
		cfg.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("APPRAISE_WORKERS"); val != "" {
		workers, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid APPRAISE_WORKERS %q: %w", val, err)
		}
		cfg.Batch.Workers = workers
	}
	if val := os.Getenv("APPRAISE_METRICS_FILE"); val != "" {
		cfg.Metrics.File = val
	}
	return nil
}
