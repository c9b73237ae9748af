// Package apperrors defines the error kinds surfaced at the API boundary.
// Services return these; handlers map them to HTTP statuses. Anything not
// wrapped in one of these kinds is treated as an internal error (500) and
// only logged server-side.
package apperrors

import "errors"

var (
	// ErrNotFound covers both "no such id" and "belongs to another user";
	// the two must stay indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable means the external analysis collaborator is
	// unreachable or not configured. Distinct from ErrNoReceiptData so the
	// caller can tell a configuration problem from a bad scan.
	ErrServiceUnavailable = errors.New("receipt analysis service unavailable")

	// ErrNoReceiptData means the collaborator ran but produced no document.
	ErrNoReceiptData = errors.New("no receipt data extracted")
)

// ValidationError is a caller-correctable input error (400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidation wraps a message into a ValidationError.
func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
