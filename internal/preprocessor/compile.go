package preprocessor

import (
	"fmt"

	"rgehrsitz/appraise/internal/rules"
	"rgehrsitz/appraise/internal/runtime"

	"github.com/rs/zerolog/log"
)

// Compile turns a validated rule set into a knowledge base, preserving the
// order of both lists.
func Compile(set *rules.RuleSet) (*runtime.KnowledgeBase, error) {
	standard := make([]rules.Rule, 0, len(set.Rules))
	for i, def := range set.Rules {
		r, err := def.Build(i)
		if err != nil {
			return nil, err
		}
		standard = append(standard, r)
	}

	special := make([]rules.SpecialRule, 0, len(set.SpecialRules))
	for i, def := range set.SpecialRules {
		s, err := def.Build(i)
		if err != nil {
			return nil, err
		}
		special = append(special, s)
	}

	log.Info().Int("rules", len(standard)).Int("specialRules", len(special)).Msg("Knowledge base compiled")
	return runtime.NewKnowledgeBase(standard, special), nil
}

// Prepare validates, optimizes and compiles a rule set.
func Prepare(set *rules.RuleSet) (*runtime.KnowledgeBase, error) {
	if err := ValidateRules(set); err != nil {
		return nil, err
	}
	optimized, err := OptimizeRules(set)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize rules: %w", err)
	}
	return Compile(optimized)
}

// LoadKnowledgeBase builds a knowledge base from a rules file, or from
// rules.DefaultRuleSet when path is empty.
func LoadKnowledgeBase(path string) (*runtime.KnowledgeBase, error) {
	if path == "" {
		set := rules.DefaultRuleSet()
		return Prepare(&set)
	}
	set, err := readRuleSet(path)
	if err != nil {
		return nil, err
	}
	kb, err := Prepare(set)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return kb, nil
}
