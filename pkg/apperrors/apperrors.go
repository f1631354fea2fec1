// Package apperrors defines the error taxonomy shared across services.
// Services wrap their sentinel errors with one of these kinds so handlers
// can map any business error to the right HTTP status without knowing the
// individual sentinels.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a business error.
type Kind int

const (
	// KindValidation marks missing or contradictory input.
	KindValidation Kind = iota + 1
	// KindNotFound marks a referenced record that does not exist.
	KindNotFound
	// KindPermission marks an actor lacking a required capability.
	KindPermission
	// KindConflict marks a uniqueness or state conflict.
	KindConflict
	// KindInternal marks an unexpected store or infrastructure failure.
	KindInternal
)

// Error is a classified business error.
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

// Unwrap exposes the wrapped error so errors.Is still matches sentinels.
func (e *Error) Unwrap() error { return e.err }

// Kind reports the classification of err, or KindInternal when err carries
// no classification.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: err}
}

// Validation wraps err as a validation failure.
func Validation(err error) error { return wrap(KindValidation, err) }

// Validationf builds a validation failure from a format string.
func Validationf(format string, args ...interface{}) error {
	return wrap(KindValidation, fmt.Errorf(format, args...))
}

// NotFound wraps err as a missing-record failure.
func NotFound(err error) error { return wrap(KindNotFound, err) }

// Permission wraps err as a missing-capability failure.
func Permission(err error) error { return wrap(KindPermission, err) }

// Conflict wraps err as a uniqueness or state conflict.
func Conflict(err error) error { return wrap(KindConflict, err) }

// Internal wraps err as an unexpected failure.
func Internal(err error) error { return wrap(KindInternal, err) }
