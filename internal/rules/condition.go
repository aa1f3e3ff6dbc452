// internal/rules/condition.go

package rules

const (
	// ProductivityFact is the integer fact every special rule compares
	// against its threshold.
	ProductivityFact = "productivity"

	// RewardLevel is the level a special rule looks for on the high
	// productivity path. It is fixed and does not follow the rule's
	// configured value, so a rule built around "Poor" still fires when a
	// condition is "Excellent" and productivity is above its threshold.
	RewardLevel = "Excellent"

	// DefaultOutcome is reported when no special rule fires and every
	// standard rule holds.
	DefaultOutcome = "Exceeds Expectations"
)
