// Package config holds the settings for the appraise commands. Settings are
// read from a YAML file, completed with defaults, optionally overridden from
// APPRAISE_* environment variables and validated.
package config

// Config is the root configuration.
type Config struct {
	// RulesFile is a JSON or YAML rule set. When empty the built-in employee
	// review rules are used.
	RulesFile string `yaml:"rules_file"`

	Log     LogConfig     `yaml:"log"`
	Batch   BatchConfig   `yaml:"batch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `yaml:"format"`
}

// BatchConfig controls batch evaluation.
type BatchConfig struct {
	// Workers is the maximum number of bundles evaluated at once.
	Workers int `yaml:"workers"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	// File is the textfile path. Metrics are not written when empty.
	File string `yaml:"file"`

	Namespace string `yaml:"namespace"`
}
