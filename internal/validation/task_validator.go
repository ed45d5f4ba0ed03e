package validation

import (
	"time"
)

// TaskValidator checks task input
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator using rules
func NewTaskValidator(rules Rules) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithRules(rules)}
}

// ValidateTask checks a task name and allotted duration and returns the
// trimmed name.
func (tv *TaskValidator) ValidateTask(name string, duration time.Duration) (string, error) {
	ve := NewValidationError()
	tv.validator.checkName(ve, "task_name", name)

	if !tv.validator.IsValidDuration(duration) {
		ve.AddInvalidRangeError("duration", duration,
			"must be between 0s and "+tv.validator.rules.MaxTaskDuration.String())
	}

	if err := ve.AppError(); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}

// ValidateTaskID checks a task id
func (tv *TaskValidator) ValidateTaskID(id string) error {
	return tv.validator.ValidateID("task_id", id)
}

// ValidateTimeEntryID checks a time entry id
func (tv *TaskValidator) ValidateTimeEntryID(id string) error {
	return tv.validator.ValidateID("time_entry_id", id)
}
