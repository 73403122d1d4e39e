package models

import "errors"

// Sentinel errors shared by the service and transport layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrOwnership          = errors.New("password does not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports client input that violates a content rule.
// Reason is the client-facing message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
