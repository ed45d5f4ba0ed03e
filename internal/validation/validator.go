package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rules holds the configurable input limits.
type Rules struct {
	NameMinLength        int
	NameMaxLength        int
	DescriptionMaxLength int
	MaxTaskDuration      time.Duration
}

// DefaultRules returns the limits used when none are configured.
// MaxTaskDuration matches the largest value the 999:59 clock input accepts.
func DefaultRules() Rules {
	return Rules{
		NameMinLength:        1,
		NameMaxLength:        100,
		DescriptionMaxLength: 500,
		MaxTaskDuration:      999*time.Minute + 59*time.Second,
	}
}

// Validator provides the checks shared by the entity validators
type Validator struct {
	rules Rules
}

// NewValidator creates a validator with the default rules
func NewValidator() *Validator {
	return NewValidatorWithRules(DefaultRules())
}

// NewValidatorWithRules creates a validator with configured rules
func NewValidatorWithRules(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// Rules returns the limits in effect
func (v *Validator) Rules() Rules {
	return v.rules
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed length in characters, not bytes
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && (max <= 0 || length <= max)
}

// HasControlCharacters reports whether s contains newlines, tabs or other
// control characters.
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidDuration checks 0 <= d <= MaxTaskDuration
func (v *Validator) IsValidDuration(d time.Duration) bool {
	return d >= 0 && (v.rules.MaxTaskDuration <= 0 || d <= v.rules.MaxTaskDuration)
}

// IsValidID checks that id is a uuid in its canonical lowercase hyphenated
// form, the only form ids are stored in.
func (v *Validator) IsValidID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// checkName records errors for a required single line name
func (v *Validator) checkName(ve *ValidationError, field, name string) {
	if !v.IsNonEmptyString(name) {
		ve.AddRequiredError(field)
		return
	}
	if !v.IsValidStringLength(name, v.rules.NameMinLength, v.rules.NameMaxLength) {
		ve.AddInvalidLengthError(field, name, v.rules.NameMinLength, v.rules.NameMaxLength)
	}
	if v.HasControlCharacters(name) {
		ve.AddInvalidCharacterError(field, name)
	}
}

// ValidateID returns a validation error unless id is a uuid
func (v *Validator) ValidateID(field, id string) error {
	ve := NewValidationError()
	switch {
	case !v.IsNonEmptyString(id):
		ve.AddRequiredError(field)
	case !v.IsValidID(id):
		ve.AddInvalidFormatError(field, id, "uuid")
	}
	return ve.AppError()
}
