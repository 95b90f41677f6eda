package validator

import (
	"fmt"
	"slices"

	"github.com/futig/insurance-advisor/internal/entity"
)

// Validator checks values that come from enumerated form controls.
// Free-text fields such as age and income are passed through untouched.
type Validator struct {
	needs []string
}

func NewValidator() *Validator {
	return &Validator{needs: entity.NeedOptions}
}

// ValidateNeed checks that the tag is one of the offered needs
func (v *Validator) ValidateNeed(need string) error {
	if need == "" {
		return fmt.Errorf("%w: need", entity.ErrMissingField)
	}
	if !slices.Contains(v.needs, need) {
		return fmt.Errorf("%w: unknown need %q", entity.ErrInvalidParameter, need)
	}
	return nil
}

// ValidateProfileField checks a single field change; selects accept an empty value
func (v *Validator) ValidateProfileField(field entity.ProfileField, value string) error {
	switch field {
	case entity.FieldAge, entity.FieldIncome:
		return nil
	case entity.FieldFamily:
		return validateOption(entity.FamilyOptions, "family", value)
	case entity.FieldHealth:
		return validateOption(entity.HealthOptions, "health", value)
	default:
		return fmt.Errorf("%w: unknown field %q", entity.ErrInvalidParameter, field)
	}
}

// ValidateTab checks a navigation target
func (v *Validator) ValidateTab(tab entity.Tab) error {
	if !tab.IsValid() {
		return fmt.Errorf("%w: unknown tab %q", entity.ErrInvalidParameter, tab)
	}
	return nil
}

// ValidateFormat checks a report format
func (v *Validator) ValidateFormat(format entity.ResultFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
	return nil
}

func validateOption(options []entity.Option, name, value string) error {
	if value == "" {
		return nil
	}
	for _, o := range options {
		if o.Value == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", entity.ErrInvalidParameter, name, value)
}
