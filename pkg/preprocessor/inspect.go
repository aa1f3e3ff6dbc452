// pkg/preprocessor/inspect.go

// Package preprocessor reports what a rules file will load as, without
// evaluating anything.
package preprocessor

import (
	"fmt"
	"os"

	"rgehrsitz/appraise/internal/preprocessor"
)

const (
	FormatJSON = preprocessor.FormatJSON
	FormatYAML = preprocessor.FormatYAML
)

// Summary describes a validated rule set after duplicate removal.
type Summary struct {
	Rules               int      `json:"rules"`
	SpecialRules        int      `json:"specialRules"`
	DroppedRules        int      `json:"droppedRules"`
	DroppedSpecialRules int      `json:"droppedSpecialRules"`
	ConsumedFacts       []string `json:"consumedFacts"`
}

// Inspect parses, validates and optimizes a rule set and summarizes the
// result.
func Inspect(data []byte, format string) (*Summary, error) {
	set, err := preprocessor.ParseAndValidateRules(data, format)
	if err != nil {
		return nil, err
	}

	optimized, err := preprocessor.OptimizeRules(set)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Rules:               len(optimized.Rules),
		SpecialRules:        len(optimized.SpecialRules),
		DroppedRules:        len(set.Rules) - len(optimized.Rules),
		DroppedSpecialRules: len(set.SpecialRules) - len(optimized.SpecialRules),
		ConsumedFacts:       preprocessor.ConsumedFacts(optimized),
	}, nil
}

// InspectFile is Inspect for a .json, .yaml or .yml file.
func InspectFile(path string) (*Summary, error) {
	format, err := preprocessor.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}
	summary, err := Inspect(data, format)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return summary, nil
}
