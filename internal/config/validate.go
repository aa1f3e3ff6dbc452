package config

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is a validation failure for one configuration field.
type FieldError struct {
	// Field is the dotted path, e.g. "log.level".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}

	metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Validate checks the configuration and returns a ValidationError listing
// every problem, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if !contains(validLogLevels, cfg.Log.Level) {
		errs = append(errs, FieldError{Field: "log.level", Message: fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", "))})
	}
	if !contains(validLogFormats, cfg.Log.Format) {
		errs = append(errs, FieldError{Field: "log.format", Message: fmt.Sprintf("must be one of %s", strings.Join(validLogFormats, ", "))})
	}
	if cfg.Batch.Workers < 1 {
		errs = append(errs, FieldError{Field: "batch.workers", Message: "must be at least 1"})
	}
	if !metricNamePattern.MatchString(cfg.Metrics.Namespace) {
		errs = append(errs, FieldError{Field: "metrics.namespace", Message: "must be a valid Prometheus metric name prefix"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
