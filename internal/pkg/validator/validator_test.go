package validator

import (
	"errors"
	"testing"

	"github.com/futig/insurance-advisor/internal/entity"
)

func TestValidateNeed(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateNeed("健康保障"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidateNeed(""); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if err := v.ValidateNeed("買房"); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestValidateProfileField(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		field   entity.ProfileField
		value   string
		wantErr bool
	}{
		{entity.FieldAge, "not a number", false},
		{entity.FieldIncome, "", false},
		{entity.FieldFamily, entity.FamilyMarriedKids, false},
		{entity.FieldFamily, "", false},
		{entity.FieldFamily, "divorced", true},
		{entity.FieldHealth, entity.HealthPoor, false},
		{entity.FieldHealth, "great", true},
		{"email", "a@b.c", true},
	}

	for _, tt := range tests {
		err := v.ValidateProfileField(tt.field, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateProfileField(%s, %q) error = %v, wantErr %v", tt.field, tt.value, err, tt.wantErr)
		}
	}
}

func TestValidateTabAndFormat(t *testing.T) {
	v := NewValidator()

	if v.ValidateTab(entity.TabPlanning) != nil || v.ValidateTab("settings") == nil {
		t.Fatal("unexpected tab validation")
	}
	if err := v.ValidateFormat("xls"); !errors.Is(err, entity.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
