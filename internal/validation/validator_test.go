package validation

import (
	"testing"
	"time"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := validator.IsNonEmptyString(tt.input); result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		min      int
		max      int
		expected bool
	}{
		{"Empty string, min 1", "", 1, 10, false},
		{"Too short", "a", 2, 10, false},
		{"Too long", "very long string", 1, 5, false},
		{"Exactly max", "hello", 1, 5, true},
		{"Trimmed before counting", "  hello  ", 1, 5, true},
		{"Counts characters not bytes", "éééé", 1, 4, true},
		{"No maximum", "anything at all", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := validator.IsValidStringLength(tt.input, tt.min, tt.max); result != tt.expected {
				t.Errorf("IsValidStringLength(%q, %d, %d) = %v, expected %v", tt.input, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_HasControlCharacters(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Morning routine", false},
		{"Stretch (5 min) & breathe!", false},
		{"Line\nbreak", true},
		{"Tab\tseparated", true},
		{"Bell\a", true},
	}

	for _, tt := range tests {
		if result := validator.HasControlCharacters(tt.input); result != tt.expected {
			t.Errorf("HasControlCharacters(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestValidator_IsValidDuration(t *testing.T) {
	validator := NewValidatorWithRules(Rules{MaxTaskDuration: time.Hour})

	tests := []struct {
		duration time.Duration
		expected bool
	}{
		{0, true},
		{30 * time.Minute, true},
		{time.Hour, true},
		{time.Hour + time.Second, false},
		{-time.Second, false},
	}

	for _, tt := range tests {
		if result := validator.IsValidDuration(tt.duration); result != tt.expected {
			t.Errorf("IsValidDuration(%v) = %v, expected %v", tt.duration, result, tt.expected)
		}
	}
}

func TestValidator_ValidateID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		id        string
		expectErr bool
		errType   ValidationErrorType
	}{
		{"Valid uuid", "6f1c6a8e-3f7b-4c39-9d0a-5d3c1f4b2e10", false, ""},
		{"Empty", "", true, ErrorTypeRequired},
		{"Not a uuid", "42", true, ErrorTypeInvalidFormat},
		{"Surrounding whitespace", " 6f1c6a8e-3f7b-4c39-9d0a-5d3c1f4b2e10 ", true, ErrorTypeInvalidFormat},
		{"Upper case", "6F1C6A8E-3F7B-4C39-9D0A-5D3C1F4B2E10", true, ErrorTypeInvalidFormat},
		{"URN form", "urn:uuid:6f1c6a8e-3f7b-4c39-9d0a-5d3c1f4b2e10", true, ErrorTypeInvalidFormat},
		{"Braced form", "{6f1c6a8e-3f7b-4c39-9d0a-5d3c1f4b2e10}", true, ErrorTypeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateID("activity_id", tt.id)
			if (err != nil) != tt.expectErr {
				t.Fatalf("ValidateID(%q) error = %v, expectErr %v", tt.id, err, tt.expectErr)
			}
			if err == nil {
				return
			}
			ve := unwrapValidation(t, err)
			if ve.Errors[0].Type != tt.errType {
				t.Errorf("expected error type %s, got %s", tt.errType, ve.Errors[0].Type)
			}
		})
	}
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	if rules.NameMinLength != 1 || rules.NameMaxLength != 100 || rules.DescriptionMaxLength != 500 {
		t.Errorf("unexpected length defaults: %+v", rules)
	}
	if rules.MaxTaskDuration != 999*time.Minute+59*time.Second {
		t.Errorf("unexpected MaxTaskDuration: %v", rules.MaxTaskDuration)
	}
}
