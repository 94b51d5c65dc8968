package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindDependency   ErrorKind = "dependency"
)

// Error is the error type surfaced by the core. Message is safe to show to
// callers; Err keeps the underlying cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewUnauthorizedError(msg string, cause error) error {
	return &Error{Kind: KindUnauthorized, Message: msg, Err: cause}
}

func NewForbiddenError(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewDependencyError(msg string, cause error) error {
	return &Error{Kind: KindDependency, Message: msg, Err: cause}
}

var (
	ErrInvalidStatus   = &Error{Kind: KindValidation, Message: "invalid status"}
	ErrBookingNotFound = &Error{Kind: KindNotFound, Message: "booking not found"}
	ErrAlreadyResolved = &Error{Kind: KindConflict, Message: "booking already resolved"}
	ErrAlreadyRated    = &Error{Kind: KindConflict, Message: "booking already rated"}
	ErrEmailTaken      = &Error{Kind: KindConflict, Message: "email already registered"}
)

// KindOf returns the kind of err, treating anything unrecognised as a dependency failure.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindDependency
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
