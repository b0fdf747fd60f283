package validation

import (
	"errors"
)

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorInvalidPhone ValidationErrorCode = iota
	ErrorDuplicateName
	ErrorDuplicateNumber
	ErrorNameRequired
	ErrorTemplateCount
	ErrorEmptyKey
	ErrorDuplicateKey
)

var (
	// ErrInvalid matches every ValidationError that is not a duplicate contact.
	ErrInvalid = errors.New("validation failed")
	// ErrDuplicate matches contact name or number collisions.
	ErrDuplicate = errors.New("duplicate contact")
)

// ValidationError represents a specific validation error
type ValidationError struct {
	Field   string
	Code    ValidationErrorCode
	Message string
}

func NewValidationError(field string, code ValidationErrorCode, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrDuplicate:
		return e.Code == ErrorDuplicateName || e.Code == ErrorDuplicateNumber
	case ErrInvalid:
		return e.Code != ErrorDuplicateName && e.Code != ErrorDuplicateNumber
	}
	return false
}

// CodeOf extracts the validation code carried by err, if any.
func CodeOf(err error) (ValidationErrorCode, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Code, true
	}
	return 0, false
}
