// runtime/runtime.go

package runtime

import (
	"rgehrsitz/appraise/internal/facts"
	"rgehrsitz/appraise/internal/rules"

	"github.com/rs/zerolog/log"
)

// Source says which part of the knowledge base produced a decision.
type Source string

const (
	SourceSpecial  Source = "special"
	SourceStandard Source = "standard"
	SourceDefault  Source = "default"
)

// Decision is the outcome of one evaluation together with the rule that
// produced it. Rule is empty and Index is -1 for the default outcome.
type Decision struct {
	Outcome string `json:"outcome"`
	Source  Source `json:"source"`
	Rule    string `json:"rule,omitempty"`
	Index   int    `json:"index"`
}

// KnowledgeBase holds an ordered list of special rules and an ordered list of
// standard rules. It is never modified after construction, so a single
// instance can be evaluated from many goroutines.
type KnowledgeBase struct {
	specialRules []rules.SpecialRule
	rules        []rules.Rule
}

// NewKnowledgeBase creates a knowledge base. The slices are copied and their
// order is the evaluation order.
func NewKnowledgeBase(standard []rules.Rule, special []rules.SpecialRule) *KnowledgeBase {
	return &KnowledgeBase{
		specialRules: append([]rules.SpecialRule(nil), special...),
		rules:        append([]rules.Rule(nil), standard...),
	}
}

// Rules returns a copy of the standard rules in evaluation order.
func (kb *KnowledgeBase) Rules() []rules.Rule {
	return append([]rules.Rule(nil), kb.rules...)
}

// SpecialRules returns a copy of the special rules in evaluation order.
func (kb *KnowledgeBase) SpecialRules() []rules.SpecialRule {
	return append([]rules.SpecialRule(nil), kb.specialRules...)
}

// Evaluate classifies the facts and returns the outcome label.
func (kb *KnowledgeBase) Evaluate(f facts.Facts) string {
	return kb.Decide(f).Outcome
}

// Decide classifies the facts. The first special rule that fires wins;
// otherwise the first standard rule whose bar is not met reports its outcome;
// otherwise the result is rules.DefaultOutcome.
func (kb *KnowledgeBase) Decide(f facts.Facts) Decision {
	for i, special := range kb.specialRules {
		if special.Evaluate(f) {
			log.Debug().Str("rule", special.Name()).Int("index", i).Str("outcome", special.Outcome()).Msg("Special rule fired")
			return Decision{Outcome: special.Outcome(), Source: SourceSpecial, Rule: special.Name(), Index: i}
		}
	}

	for i, rule := range kb.rules {
		if !rule.Evaluate(f) {
			log.Debug().Str("rule", rule.Name()).Int("index", i).Str("outcome", rule.Outcome()).Msg("Minimum not met")
			return Decision{Outcome: rule.Outcome(), Source: SourceStandard, Rule: rule.Name(), Index: i}
		}
	}

	log.Debug().Str("outcome", rules.DefaultOutcome).Msg("All minimums met")
	return Decision{Outcome: rules.DefaultOutcome, Source: SourceDefault, Index: -1}
}
