package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	if err := v.Validate(cfg); err != nil {
		return err
	}

	// Tag-based validation cannot express constraints on map keys, so the
	// attribute mappings are checked by hand.
	if err := validateAttributeMap("hero.resources.attributes-ratio", cfg.Hero.Resources.AttributesRatio); err != nil {
		return err
	}
	return validateAttributeMap("hero.resources.attributes-steps", cfg.Hero.Resources.AttributesSteps)
}

func validateAttributeMap(name string, mapping map[string]int) error {
	for key, value := range mapping {
		if !isAttributeKey(key) {
			return fmt.Errorf("%s: unknown attribute %q (want one of %s)",
				name, key, strings.Join(AttributeKeys, "|"))
		}
		if value < 0 || value > 100 {
			return fmt.Errorf("%s: value for %q must be in [0,100], got %d", name, key, value)
		}
	}
	return nil
}

func isAttributeKey(key string) bool {
	for _, known := range AttributeKeys {
		if key == known {
			return true
		}
	}
	return false
}
