package validation

import (
	"fmt"
	"strings"
	"testing"

	"momentum/internal/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "duration", Message: "is out of range"},
		}, "multiple validation errors: validation error for field 'name': is required; validation error for field 'duration': is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.Error(); result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	ve.AddInvalidLengthError("activity_name", "x", 2, 10)
	ve.AddInvalidLengthError("description", "x", 0, 10)
	ve.AddInvalidFormatError("task_id", "42", "uuid")
	ve.AddInvalidRangeError("duration", -1, "must be positive")
	ve.AddInvalidCharacterError("task_name", "a\tb")

	expected := []struct {
		field   string
		kind    ValidationErrorType
		message string
	}{
		{"task_name", ErrorTypeRequired, "task_name is required"},
		{"activity_name", ErrorTypeInvalidLength, "activity_name must be between 2 and 10 characters long"},
		{"description", ErrorTypeInvalidLength, "description must be at most 10 characters long"},
		{"task_id", ErrorTypeInvalidFormat, "task_id has invalid format, expected: uuid"},
		{"duration", ErrorTypeInvalidRange, "duration is out of range: must be positive"},
		{"task_name", ErrorTypeInvalidCharacter, "task_name contains invalid characters"},
	}

	if len(ve.Errors) != len(expected) {
		t.Fatalf("expected %d errors, got %d", len(expected), len(ve.Errors))
	}
	for i, e := range expected {
		got := ve.Errors[i]
		if got.Field != e.field || got.Type != e.kind || got.Message != e.message {
			t.Errorf("error %d = %+v, expected field=%s type=%s message=%q", i, got, e.field, e.kind, e.message)
		}
	}

	if n := len(ve.GetFieldErrors("task_name")); n != 2 {
		t.Errorf("GetFieldErrors(task_name) returned %d errors, expected 2", n)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	empty := NewValidationError()
	if msg := empty.GetUserFriendlyMessage(); msg != "Input validation failed" {
		t.Errorf("unexpected message for empty error: %q", msg)
	}

	single := NewValidationError()
	single.AddRequiredError("activity_name")
	if msg := single.GetUserFriendlyMessage(); msg != "activity_name is required" {
		t.Errorf("unexpected message for single error: %q", msg)
	}

	multi := NewValidationError()
	multi.AddRequiredError("task_name")
	multi.AddInvalidRangeError("duration", -1, "negative")
	msg := multi.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:\n") || !strings.Contains(msg, "- task_name is required") {
		t.Errorf("unexpected message for multiple errors: %q", msg)
	}
}

func TestValidationError_AppError(t *testing.T) {
	if err := NewValidationError().AppError(); err != nil {
		t.Errorf("expected nil for an empty ValidationError, got %v", err)
	}

	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	err := ve.AppError()

	if !errors.IsErrorType(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected a validation AppError, got %T", err)
	}
	if msg := errors.GetUserMessage(err); msg != "task_name is required" {
		t.Errorf("GetUserMessage() = %q", msg)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should see the wrapped ValidationError")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError should be false for other errors")
	}
}
