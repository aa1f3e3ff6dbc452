package preprocessor

import (
	"testing"

	"rgehrsitz/appraise/internal/facts"
	"rgehrsitz/appraise/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefinitionKey checks that equivalent definitions share a key and
// different ones do not.
func TestDefinitionKey(t *testing.T) {
	key1, err := definitionKey("rule", "productivity", 70, "Needs Improvement")
	assert.NoError(t, err, "definitionKey should not produce an error")
	key2, err := definitionKey("rule", "productivity", 70.0, "Needs Improvement")
	assert.NoError(t, err)
	key3, err := definitionKey("rule", "productivity", "70", "Needs Improvement")
	assert.NoError(t, err)
	key4, err := definitionKey("special", "productivity", 70, "Needs Improvement")
	assert.NoError(t, err)

	assert.Equal(t, key1, key2, "70 and 70.0 describe the same integer")
	assert.NotEqual(t, key1, key3, "integer and text values differ")
	assert.NotEqual(t, key1, key4, "standard and special definitions never collide")
}

func TestOptimizeRules_DropsDuplicatesKeepingOrder(t *testing.T) {
	set := &rules.RuleSet{
		Rules: []rules.RuleDef{
			{Name: "Rule1", Fact: "productivity", Value: 70, Outcome: "Needs Improvement"},
			{Name: "Rule2", Fact: "teamwork", Value: "Good", Outcome: "Needs Improvement"},
			{Name: "Rule3", Fact: "productivity", Value: 70.0, Outcome: "Needs Improvement"},
			{Name: "Rule4", Fact: "communication", Value: "Adequate", Outcome: "Needs Improvement"},
		},
		SpecialRules: []rules.SpecialRuleDef{
			{Name: "Special1", Facts: []string{"teamwork"}, Value: "Poor", ProductivityThreshold: 30, Outcome: "Fired"},
			{Name: "Special2", Facts: []string{"teamwork"}, Value: "Poor", ProductivityThreshold: 30, Outcome: "Fired"},
			{Name: "Special3", Facts: []string{"teamwork"}, Value: "Poor", ProductivityThreshold: 20, Outcome: "Fired"},
		},
	}

	optimized, err := OptimizeRules(set)
	require.NoError(t, err)

	var names []string
	for _, def := range optimized.Rules {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"Rule1", "Rule2", "Rule4"}, names)

	names = nil
	for _, def := range optimized.SpecialRules {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"Special1", "Special3"}, names)

	assert.Len(t, set.Rules, 4, "the input set is not modified")
}

func TestOptimizeRules_DifferentOutcomesAreKept(t *testing.T) {
	set := &rules.RuleSet{
		Rules: []rules.RuleDef{
			{Fact: "productivity", Value: 70, Outcome: "Needs Improvement"},
			{Fact: "productivity", Value: 70, Outcome: "On Probation"},
		},
	}
	optimized, err := OptimizeRules(set)
	require.NoError(t, err)
	assert.Len(t, optimized.Rules, 2)
}

func TestOptimizeRules_PreservesOutcomes(t *testing.T) {
	set := rules.DefaultRuleSet()
	set.Rules = append(set.Rules, set.Rules...)
	set.SpecialRules = append(set.SpecialRules, set.SpecialRules[0])

	original, err := Compile(&set)
	require.NoError(t, err)
	optimizedSet, err := OptimizeRules(&set)
	require.NoError(t, err)
	optimized, err := Compile(optimizedSet)
	require.NoError(t, err)

	assert.Len(t, optimized.Rules(), 3)
	assert.Len(t, optimized.SpecialRules(), 2)

	for productivity := 0; productivity <= 100; productivity += 5 {
		for _, teamwork := range []string{"Poor", "Good", "Excellent"} {
			for _, communication := range []string{"Poor", "Adequate", "Excellent"} {
				f := facts.Facts{
					"productivity":  facts.Int(productivity),
					"teamwork":      facts.Text(teamwork),
					"communication": facts.Text(communication),
				}
				assert.Equal(t, original.Decide(f), optimized.Decide(f))
			}
		}
	}
}

func TestConsumedFacts(t *testing.T) {
	set := &rules.RuleSet{
		Rules: []rules.RuleDef{
			{Fact: "teamwork", Value: "Good", Outcome: "x"},
		},
		SpecialRules: []rules.SpecialRuleDef{
			{Facts: []string{"communication", "teamwork"}, Value: "Poor", Outcome: "Fired"},
		},
	}
	assert.Equal(t, []string{"communication", "productivity", "teamwork"}, ConsumedFacts(set))

	onlyStandard := &rules.RuleSet{Rules: []rules.RuleDef{{Fact: "teamwork", Value: "Good", Outcome: "x"}}}
	assert.Equal(t, []string{"teamwork"}, ConsumedFacts(onlyStandard))
}
