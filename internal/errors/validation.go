package errors

import stdErrors "errors"

// ValidationError reports a request the caller built incorrectly, e.g. a
// missing identifier.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if err is a ValidationError
func IsValidationError(err error) bool {
	var validation *ValidationError
	return stdErrors.As(err, &validation)
}
