package model

import (
	"errors"
	"fmt"
)

// ValidationError reports a value object that cannot be sent as is.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidRecurringType = "INVALID_RECURRING_TYPE"
	ErrCodeInvalidValue         = "INVALID_VALUE"
)

func NewMissingRequiredFieldError(field string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidRecurringTypeError(t RecurringType) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidRecurringType,
		Message: fmt.Sprintf("recurring type %q must be one of M, W, D", string(t)),
	}
}

func NewInvalidValueError(field string, value int) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("%s must be positive, got %d", field, value),
	}
}

// IsErrorCode checks if err is a ValidationError with the given code.
func IsErrorCode(err error, code string) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Code == code
	}
	return false
}

// IsValidationError reports whether err is a ValidationError of any code.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
