package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict matches any uniqueness violation via errors.Is.
var ErrConflict = errors.New("conflict")

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is returned when a uniqueness constraint (email, slug) is
// violated. It matches ErrConflict so callers can branch with errors.Is.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a record with this %s already exists", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func conflictErr(field string) error {
	return &ConflictError{Field: field}
}
