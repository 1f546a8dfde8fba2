package errs

import (
    "errors"
    "strings"
)

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    ErrInvalid  = errors.New("invalid")
    ErrConflict = errors.New("conflict")
)

// ValidationError reports a required field that was missing on create (HTTP 400).
type ValidationError struct {
    Field string
}

func (e *ValidationError) Error() string { return capitalize(e.Field) + " is required" }

// Is lets errors.Is(err, ErrInvalid) match.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Required builds a ValidationError for field.
func Required(field string) error { return &ValidationError{Field: field} }

// NotFoundError reports a missing record or a missing referenced parent (HTTP 404).
type NotFoundError struct {
    Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a NotFoundError for entity.
func NotFound(entity string) error { return &NotFoundError{Entity: entity} }

// Entity names used in NotFound messages.
const (
    EntityPerson  = "Person"
    EntityProject = "Project"
    EntityTask    = "Task"
)

func capitalize(s string) string {
    if s == "" { return s }
    return strings.ToUpper(s[:1]) + s[1:]
}
