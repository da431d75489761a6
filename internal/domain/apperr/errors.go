// Package apperr holds the sentinel errors the HTTP layer maps to status codes.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation builds a ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// Error pairs a sentinel with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New builds an Error of the given kind.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Message returns the client-facing text carried by err, if any.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
