package errors

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError reports field level problems with submitted input. Fields is
// keyed by the JSON name of the offending field.
type ValidationError struct {
	Fields validation.Errors
}

func NewValidationError(fields validation.Errors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError converts the result of an ozzo validation into a
// *ValidationError. Errors that are not field errors are returned unchanged.
func AsValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

// ConflictError reports unique fields whose values already belong to another
// account.
type ConflictError struct {
	Fields validation.Errors
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " and ") + " already in use"
}

// Unwrap exposes ErrUsernameTaken and ErrEmailTaken for errors.Is.
func (e *ConflictError) Unwrap() []error {
	var errs []error
	if _, ok := e.Fields["username"]; ok {
		errs = append(errs, ErrUsernameTaken)
	}
	if _, ok := e.Fields["email"]; ok {
		errs = append(errs, ErrEmailTaken)
	}
	return errs
}
