package preprocessor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rgehrsitz/appraise/internal/facts"
	"rgehrsitz/appraise/internal/rules"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ErrEmptyRuleSet is returned for a rule set without any rule.
var ErrEmptyRuleSet = errors.New("rule set must contain at least one rule or special rule")

// ValidationError describes the first problem found in a rule definition.
type ValidationError struct {
	Kind    string // "rule" or "special rule"
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: '%s' %s", e.Kind, e.Index, e.Field, e.Message)
}

var definitionValidate *validator.Validate

func init() {
	definitionValidate = validator.New()
	definitionValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = definitionValidate.RegisterValidation("factname", validateFactName)
}

// validateFactName rejects blank names and names with surrounding
// whitespace, which can never match a fact read from input.
func validateFactName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name != "" && strings.TrimSpace(name) == name
}

// ValidateRules checks every definition in order and returns the first
// problem as a *ValidationError.
func ValidateRules(set *rules.RuleSet) error {
	log.Info().Msg("Started validating rules...")
	if set == nil || (len(set.Rules) == 0 && len(set.SpecialRules) == 0) {
		return ErrEmptyRuleSet
	}

	for i, def := range set.Rules {
		if err := validateDefinition("rule", i, def, def.Value); err != nil {
			return err
		}
	}
	for i, def := range set.SpecialRules {
		if err := validateDefinition("special rule", i, def, def.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateDefinition(kind string, index int, def any, value any) error {
	if err := definitionValidate.Struct(def); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{Kind: kind, Index: index, Field: fe.Field(), Message: describe(fe)}
		}
		return fmt.Errorf("failed to validate %s %d: %w", kind, index, err)
	}

	if _, err := facts.FromAny(value); err != nil {
		return &ValidationError{Kind: kind, Index: index, Field: "value", Message: "must be an integer or a string"}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "factname":
		return "must be a fact name without surrounding whitespace"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
