package domain

import (
	"errors"
	"fmt"
)

// Error categories. The API layer maps each one to a status code.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("invalid credentials")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("access forbidden")
)

// Error is a categorised error with a message safe to show to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity, e.g. NotFound("Workout", 3).
func NotFound(entity string, id int64) error {
	return Errorf(ErrNotFound, "%s %d not found", entity, id)
}
