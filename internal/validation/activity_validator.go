package validation

// ActivityValidator checks activity input
type ActivityValidator struct {
	validator *Validator
}

// NewActivityValidator creates an activity validator using rules
func NewActivityValidator(rules Rules) *ActivityValidator {
	return &ActivityValidator{validator: NewValidatorWithRules(rules)}
}

// ValidateActivity checks a name and optional description and returns them
// trimmed. A blank description becomes nil.
func (av *ActivityValidator) ValidateActivity(name string, description *string) (string, *string, error) {
	ve := NewValidationError()
	av.validator.checkName(ve, "activity_name", name)

	var cleaned *string
	if description != nil {
		if d := av.validator.TrimAndValidateString(*description); d != "" {
			max := av.validator.rules.DescriptionMaxLength
			if !av.validator.IsValidStringLength(d, 0, max) {
				ve.AddInvalidLengthError("description", d, 0, max)
			}
			cleaned = &d
		}
	}

	if err := ve.AppError(); err != nil {
		return "", nil, err
	}
	return av.validator.TrimAndValidateString(name), cleaned, nil
}

// ValidateActivityID checks an activity id
func (av *ActivityValidator) ValidateActivityID(id string) error {
	return av.validator.ValidateID("activity_id", id)
}
