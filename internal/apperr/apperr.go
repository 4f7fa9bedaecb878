// Package apperr defines the error taxonomy shared by the store, the
// services and the HTTP layer. Callers classify failures with the Is*
// helpers; the message of an Error is safe to return to a client.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Use errors.Is against these, or the helpers below.
var (
	// ErrValidation marks malformed or missing input (user-correctable).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate unique key.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks a backing store that is unreachable or failed a write.
	ErrStorage = errors.New("storage failure")
)

// Error couples a sentinel kind with a human-readable message and an
// optional cause. The message never carries internal detail; the cause may.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return errors.Is(e.Kind, target) }

func (e *Error) Unwrap() error { return e.Cause }

// Validation returns a user-correctable input error.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a missing-entity error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a duplicate-key error.
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a backing-store failure. The cause is logged, not returned.
func Storage(cause error, format string, args ...any) error {
	return &Error{Kind: ErrStorage, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsStorage(err error) bool    { return errors.Is(err, ErrStorage) }

// PublicMessage extracts the client-safe message from err. Unclassified
// errors collapse to a generic message so internals never leak.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
