// Package errs defines the engine's closed error taxonomy (spec §7).
//
// Subsystems never return raw errors from ad-hoc checks; they classify
// a failure into one of the kinds below so that the router can turn it
// into the right user-visible behavior without inspecting strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes the engine produces.
type Kind int

const (
	// NotFound means a referenced entity, component, or prefab id does
	// not exist.
	NotFound Kind = iota
	// InvalidArgument means the caller supplied a malformed or
	// out-of-range argument.
	InvalidArgument
	// InvalidState means the operation does not apply to the current
	// state of the target (e.g. landing a ship that is already landed).
	InvalidState
	// Conflict means the operation would violate a uniqueness or
	// ownership invariant (double-reserve, duplicate static id, ...).
	Conflict
	// NotImplemented marks a programmer error: a code path that should
	// not be reachable yet was reached. Always logged at warn.
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidArgument:
		return "invalid_argument"
	case InvalidState:
		return "invalid_state"
	case Conflict:
		return "conflict"
	case NotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// Error is the concrete error value subsystems return. WithoutEffect
// marks an expected user-level failure (spec §7's
// FailureWithoutEffect) that should reach the player as a private
// message but never be logged as a warning.
type Error struct {
	Kind          Kind
	Msg           string
	WithoutEffect bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func new_(k Kind, withoutEffect bool, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), WithoutEffect: withoutEffect}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return new_(NotFound, true, format, args...)
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return new_(InvalidArgument, true, format, args...)
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return new_(InvalidState, true, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return new_(Conflict, true, format, args...)
}

func NotImplementedf(format string, args ...interface{}) *Error {
	return new_(NotImplemented, false, format, args...)
}

// KindOf extracts the Kind from err, defaulting to NotImplemented for
// errors that did not originate in this package (a programmer error:
// some code path returned a bare error instead of classifying it).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NotImplemented
}

// WithoutEffect reports whether err is a FailureWithoutEffect.
func WithoutEffect(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.WithoutEffect
	}
	return false
}
