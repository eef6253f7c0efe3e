package common

import (
	"errors"
	"fmt"
)

var (
	// input errors
	ErrValidation = errors.New("validation error")

	// auth errors
	ErrUnauthenticated = errors.New("missing token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnauthorized    = errors.New("incorrect email or password")
	ErrForbidden       = errors.New("forbidden")

	// repository errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrInternal = errors.New("internal error")
)

// Error pairs an error kind with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New returns an *Error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) *Error {
	return New(ErrValidation, msg)
}

func NotFound(msg string) *Error {
	return New(ErrNotFound, msg)
}

func Conflict(msg string) *Error {
	return New(ErrConflict, msg)
}
