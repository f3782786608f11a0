// Package errs defines the error kinds shared by the core packages.
// Each domain package declares its own sentinels in errors.go built from
// these kinds, and the HTTP layer maps a Kind to a status code.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error by what the caller must do about it
type Kind int

const (
	// KindInternal is a storage or transport failure
	KindInternal Kind = iota
	// KindValidation means the request is malformed or out of range
	KindValidation
	// KindAuthRequired means no caller identity was present
	KindAuthRequired
	// KindForbidden means the caller lacks rights on the resource
	KindForbidden
	// KindNotFound means the resource is absent or soft-deleted
	KindNotFound
	// KindConflict means a uniqueness violation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthRequired:
		return "auth_required"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified error with a human-readable message
type Error struct {
	Err     error
	Field   string
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Field)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error for a request field.
// field may be empty when the rule spans several fields.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// AuthRequired creates an error for a missing caller identity
func AuthRequired(message string) *Error {
	return &Error{Kind: KindAuthRequired, Message: message}
}

// Forbidden creates an error for a caller without rights on a resource
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound creates an error for an absent resource
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates an error for a uniqueness violation
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps a storage or transport failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Message returns the public message of a classified error, without the
// field name.
// Internal errors never expose their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "An internal error occurred"
}
