package types

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a row does not exist for the acting user.
// A row owned by a different user is reported the same way so existence
// never leaks across owners.
var ErrNotFound = errors.New("not found")

// CustomError carries an HTTP status code and error type through the
// Fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports a malformed or missing field. Operations that
// return one have had no side effect.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
