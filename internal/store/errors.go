package store

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist. Callers
	// must not guess state around it.
	ErrNotFound = errors.New("not found")

	// ErrTransient wraps failures worth a retry (locked database, busy
	// connection). Only the session layer retries.
	ErrTransient = errors.New("transient store error")

	// ErrInvalidState indicates a write that would corrupt review state,
	// such as a status row pointing at a missing question.
	ErrInvalidState = errors.New("invalid state")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient reports whether err wraps ErrTransient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
