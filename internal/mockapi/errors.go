package mockapi

import (
	"errors"
	"fmt"

	"github.com/dimitrije/carshare/internal/operations"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("not authenticated")
)

// FieldError is a validation failure on one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func required(field string) error {
	return &FieldError{Field: field, Message: field + " is required"}
}

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: field + " " + fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// decode reports a payload of the wrong shape as a validation error on
// "variables".
func decode(vars operations.Variables, target any) error {
	if err := operations.Decode(vars, target); err != nil {
		return &FieldError{Field: "variables", Message: err.Error()}
	}
	return nil
}
