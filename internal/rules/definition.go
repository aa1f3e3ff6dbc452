// internal/rules/definition.go

package rules

import (
	"fmt"

	"rgehrsitz/appraise/internal/facts"
)

// RuleSet is the declarative form of a knowledge base as it appears in a
// rules file. Order within each list is evaluation order.
type RuleSet struct {
	Rules        []RuleDef        `json:"rules" yaml:"rules"`
	SpecialRules []SpecialRuleDef `json:"specialRules,omitempty" yaml:"specialRules,omitempty"`
}

// RuleDef describes a standard rule.
type RuleDef struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Fact    string `json:"fact" yaml:"fact" validate:"required,factname"`
	Value   any    `json:"value" yaml:"value"`
	Outcome string `json:"outcome" yaml:"outcome" validate:"required"`
}

// SpecialRuleDef describes a special rule.
type SpecialRuleDef struct {
	Name                  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Facts                 []string `json:"facts" yaml:"facts" validate:"required,min=1,unique,dive,required,factname"`
	Value                 any      `json:"value" yaml:"value"`
	ProductivityThreshold int      `json:"productivityThreshold" yaml:"productivityThreshold"`
	Outcome               string   `json:"outcome" yaml:"outcome" validate:"required"`
}

// Build converts the definition into a Rule. Unnamed rules are called
// "rule[index]".
func (d RuleDef) Build(index int) (Rule, error) {
	expected, err := facts.FromAny(d.Value)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %d (%s): %w", index, d.Fact, err)
	}
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("rule[%d]", index)
	}
	return NewRule(name, d.Fact, expected, d.Outcome), nil
}

// Build converts the definition into a SpecialRule. Unnamed rules are called
// "special[index]".
func (d SpecialRuleDef) Build(index int) (SpecialRule, error) {
	expected, err := facts.FromAny(d.Value)
	if err != nil {
		return SpecialRule{}, fmt.Errorf("special rule %d (%s): %w", index, d.Outcome, err)
	}
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("special[%d]", index)
	}
	return NewSpecialRule(name, d.Facts, expected, d.ProductivityThreshold, d.Outcome), nil
}

// DefaultRuleSet returns the employee review policy: minimum bars on
// productivity, teamwork and communication, plus a raise and a firing rule.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Rules: []RuleDef{
			{Name: "minimum-productivity", Fact: "productivity", Value: 70, Outcome: "Needs Improvement"},
			{Name: "teamwork-good", Fact: "teamwork", Value: "Good", Outcome: "Needs Improvement"},
			{Name: "communication-adequate", Fact: "communication", Value: "Adequate", Outcome: "Needs Improvement"},
		},
		SpecialRules: []SpecialRuleDef{
			{
				Name:                  "raise",
				Facts:                 []string{"teamwork", "communication"},
				Value:                 "Excellent",
				ProductivityThreshold: 70,
				Outcome:               "Gets a Raise",
			},
			{
				Name:                  "fire",
				Facts:                 []string{"teamwork", "communication"},
				Value:                 "Poor",
				ProductivityThreshold: 30,
				Outcome:               "Fired",
			},
		},
	}
}
