package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError reports a missing, soft-deleted or foreign resource
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewInvalidStateError reports a transition that the current state forbids,
// e.g. starting a running task or adding a task to a completed activity.
func NewInvalidStateError(resource string, identifier string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("%s %s: %s", resource, identifier, reason),
		Code:    "INVALID_STATE",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
			"reason":     reason,
		},
	}
}

// NewConflictError reports a write rejected by a uniqueness or serialization check
func NewConflictError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("conflicting concurrent change: %s", operation),
		Code:    "CONFLICT",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError reports an operation cut short by a deadline, a busy
// database or a cancelled statement.
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound is shorthand for IsErrorType(err, ErrorTypeNotFound)
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsInvalidState is shorthand for IsErrorType(err, ErrorTypeInvalidState)
func IsInvalidState(err error) bool {
	return IsErrorType(err, ErrorTypeInvalidState)
}

// GetUserMessage returns a user-friendly error message. Persistence failures
// are collapsed into a generic message; the cause stays on the error for logs.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidState, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidState, ErrorTypeInvalidInput:
			return false // caller errors
		default:
			return true
		}
	}
	return true
}
