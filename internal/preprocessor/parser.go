package preprocessor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rgehrsitz/appraise/internal/rules"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath picks the rules file format from its extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported rules file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ParseRules decodes a rule set in the given format without validating it.
func ParseRules(data []byte, format string) (*rules.RuleSet, error) {
	log.Info().Str("format", format).Msg("Started parsing rules...")
	switch format {
	case FormatJSON:
		return ParseRulesJSON(data)
	case FormatYAML:
		return ParseRulesYAML(data)
	default:
		return nil, fmt.Errorf("unsupported rules format %q", format)
	}
}

// ErrTrailingData is returned when a rules file holds more than one document.
var ErrTrailingData = errors.New("unexpected data after the rule set")

// ParseRulesJSON decodes a JSON rule set. Unknown fields and anything after
// the top-level object are rejected. Numbers keep their literal text so large
// integer values are not rounded through float64.
func ParseRulesJSON(data []byte) (*rules.RuleSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var set rules.RuleSet
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRuleSet
		}
		return nil, fmt.Errorf("failed to unmarshal rules JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("rules JSON: %w", ErrTrailingData)
	}
	return &set, nil
}

// ParseRulesYAML decodes a YAML rule set. Unknown fields and further
// documents in the stream are rejected.
func ParseRulesYAML(data []byte) (*rules.RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var set rules.RuleSet
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRuleSet
		}
		return nil, fmt.Errorf("failed to unmarshal rules YAML: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("rules YAML: %w", ErrTrailingData)
	}
	return &set, nil
}

// ParseAndValidateRules decodes and validates a rule set.
func ParseAndValidateRules(data []byte, format string) (*rules.RuleSet, error) {
	set, err := ParseRules(data, format)
	if err != nil {
		return nil, err
	}
	if err := ValidateRules(set); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadRuleSet reads, decodes and validates a rules file.
func LoadRuleSet(path string) (*rules.RuleSet, error) {
	set, err := readRuleSet(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateRules(set); err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return set, nil
}

func readRuleSet(path string) (*rules.RuleSet, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}
	set, err := ParseRules(data, format)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return set, nil
}
