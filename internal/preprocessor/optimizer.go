package preprocessor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"

	"rgehrsitz/appraise/internal/facts"
	"rgehrsitz/appraise/internal/rules"

	"github.com/rs/zerolog/log"
)

// OptimizeRules returns a copy of a validated rule set with exact duplicates
// removed. The first occurrence is kept and the order is otherwise unchanged.
// A later duplicate can never decide an outcome: a standard rule only reports
// when every earlier rule held, and a special rule only fires when every
// earlier one did not.
func OptimizeRules(set *rules.RuleSet) (*rules.RuleSet, error) {
	optimized := &rules.RuleSet{}

	seen := make(map[string]bool)
	for i, def := range set.Rules {
		key, err := definitionKey("rule", def.Fact, def.Value, def.Outcome)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if seen[key] {
			log.Debug().Int("index", i).Str("fact", def.Fact).Msg("Dropping duplicate rule")
			continue
		}
		seen[key] = true
		optimized.Rules = append(optimized.Rules, def)
	}

	for i, def := range set.SpecialRules {
		key, err := definitionKey("special", def.Facts, def.Value, def.ProductivityThreshold, def.Outcome)
		if err != nil {
			return nil, fmt.Errorf("special rule %d: %w", i, err)
		}
		if seen[key] {
			log.Debug().Int("index", i).Str("outcome", def.Outcome).Msg("Dropping duplicate special rule")
			continue
		}
		seen[key] = true
		optimized.SpecialRules = append(optimized.SpecialRules, def)
	}

	return optimized, nil
}

// definitionKey hashes the parts of a definition that affect evaluation.
// Values are normalized first so 70 and 70.0 hash the same.
func definitionKey(kind string, parts ...any) (string, error) {
	normalized := make([]any, 0, len(parts)+1)
	normalized = append(normalized, kind)
	for _, p := range parts {
		if v, err := facts.FromAny(p); err == nil {
			p = []any{v.Kind().String(), v.Interface()}
		}
		normalized = append(normalized, p)
	}

	serialized, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("error marshaling definition: %w", err)
	}
	hash := sha256.Sum256(serialized)
	return fmt.Sprintf("%x", hash), nil
}

// ConsumedFacts lists, in sorted order, every fact the rule set reads.
func ConsumedFacts(set *rules.RuleSet) []string {
	consumed := make(map[string]bool)
	for _, def := range set.Rules {
		consumed[def.Fact] = true
	}
	for _, def := range set.SpecialRules {
		consumed[rules.ProductivityFact] = true
		for _, name := range def.Facts {
			consumed[name] = true
		}
	}

	names := make([]string, 0, len(consumed))
	for name := range consumed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
