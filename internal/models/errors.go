package models

import "errors"

// Custom errors
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid ID format")
	ErrNoEntrants  = NewValidationError("no_entrants", "race has no scored entrants")
	ErrInvalidRace = NewValidationError("invalid_race", "race shape is invalid")
)

// ValidationError is a caller contract violation with a stable code.
type ValidationError struct {
	Code    string
	Message string
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
