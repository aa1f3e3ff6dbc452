// internal/rules/rule.go

package rules

import (
	"rgehrsitz/appraise/internal/facts"
)

// Rule is a minimum bar on a single fact. Its outcome is reported when the
// bar is not met.
type Rule struct {
	name     string
	fact     string
	expected facts.Value
	outcome  string
}

// NewRule creates a standard rule.
func NewRule(name, fact string, expected facts.Value, outcome string) Rule {
	return Rule{
		name:     name,
		fact:     fact,
		expected: expected,
		outcome:  outcome,
	}
}

func (r Rule) Name() string { return r.name }
func (r Rule) Fact() string { return r.fact }
func (r Rule) Expected() facts.Value { return r.expected }
func (r Rule) Outcome() string { return r.outcome }

// Evaluate reports whether the bar is met. An integer fact must be at least
// the expected integer; a text fact must equal the expected text exactly.
// A missing fact or a kind mismatch is treated as not met.
func (r Rule) Evaluate(f facts.Facts) bool {
	actual, ok := f.Lookup(r.fact)
	if !ok {
		return false
	}

	switch actual.Kind() {
	case facts.KindInt:
		got, _ := actual.AsInt()
		want, ok := r.expected.AsInt()
		return ok && got >= want
	case facts.KindText:
		return actual.Equal(r.expected)
	default:
		return false
	}
}

// SpecialRule is a compound rule checked before any standard rule. It fires
// on either of two paths:
//
//   - low: every listed fact equals the configured value and productivity is
//     below the threshold;
//   - high: productivity is above the threshold and at least one listed fact
//     equals RewardLevel.
type SpecialRule struct {
	name      string
	facts     []string
	expected  facts.Value
	threshold int
	outcome   string
}

// NewSpecialRule creates a special rule. The condition list is copied.
func NewSpecialRule(name string, conditions []string, expected facts.Value, threshold int, outcome string) SpecialRule {
	return SpecialRule{
		name:      name,
		facts:     append([]string(nil), conditions...),
		expected:  expected,
		threshold: threshold,
		outcome:   outcome,
	}
}

func (s SpecialRule) Name() string { return s.name }
func (s SpecialRule) Expected() facts.Value { return s.expected }
func (s SpecialRule) Threshold() int { return s.threshold }
func (s SpecialRule) Outcome() string { return s.outcome }

// Facts returns the condition fact names in evaluation order.
func (s SpecialRule) Facts() []string {
	return append([]string(nil), s.facts...)
}

// Evaluate reports whether the special rule fires. Without an integer
// productivity fact neither path applies.
func (s SpecialRule) Evaluate(f facts.Facts) bool {
	productivity, ok := f.Int(ProductivityFact)
	if !ok {
		return false
	}

	if productivity < s.threshold && s.allConditionsMet(f) {
		return true
	}

	if productivity > s.threshold && s.anyConditionAt(f, facts.Text(RewardLevel)) {
		return true
	}

	return false
}

// allConditionsMet checks the listed facts left to right and stops at the
// first one that is missing or differs from the configured value.
func (s SpecialRule) allConditionsMet(f facts.Facts) bool {
	for _, name := range s.facts {
		v, ok := f.Lookup(name)
		if !ok || !v.Equal(s.expected) {
			return false
		}
	}
	return true
}

// anyConditionAt skips missing facts.
func (s SpecialRule) anyConditionAt(f facts.Facts, level facts.Value) bool {
	for _, name := range s.facts {
		if v, ok := f.Lookup(name); ok && v.Equal(level) {
			return true
		}
	}
	return false
}
