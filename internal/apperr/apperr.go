// Package apperr defines the error kinds surfaced by the service layer.
package apperr

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned when the external catalog cannot be reached.
var ErrUpstreamUnavailable = errors.New("catalog upstream unavailable")

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity  string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// PermissionError reports an actor lacking rights over an entity.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

// Validation returns a ValidationError with the given message.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFound returns a NotFoundError for entity, e.g. NotFound("List") -> "List not found".
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity, Message: fmt.Sprintf("%s not found", entity)}
}

// Forbidden returns a PermissionError with the given message.
func Forbidden(msg string) error {
	return &PermissionError{Message: msg}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

func IsPermission(err error) bool {
	var v *PermissionError
	return errors.As(err, &v)
}
