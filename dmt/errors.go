package dmt

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a blueprint is not registered.
var ErrNotFound = errors.New("dmt: blueprint not found")

// NotFoundError is returned by Lookup for an unregistered type.
type NotFoundError struct {
	label string
	typ   string
}

func (e *NotFoundError) Error() string {
	if e.typ != "" {
		return fmt.Sprintf("dmt: %s not found (type=%s)", e.label, e.typ)
	}
	return fmt.Sprintf("dmt: %s not found", e.label)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label and Type return what was looked up.
func (e *NotFoundError) Label() string { return e.label }
func (e *NotFoundError) Type() string  { return e.typ }

// NewNotFoundError returns a NotFoundError for a blueprint type.
func NewNotFoundError(label, typ string) *NotFoundError {
	return &NotFoundError{label: label, typ: typ}
}

// IsNotFound reports whether err means a missing blueprint.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ValidationError reports an attribute value that cannot be used.
type ValidationError struct {
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dmt: invalid value for attribute %q: %s", e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps err for the attribute name.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
