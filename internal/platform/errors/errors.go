package apperrors

import "errors"

var (
	// ErrInvalidState marks a session operation attempted in the wrong
	// recorder state, e.g. pausing a session that is not running.
	ErrInvalidState = errors.New("invalid session state")

	// ErrInvalidInput marks a rejected numeric setter value. State is
	// never mutated when this is returned.
	ErrInvalidInput = errors.New("invalid input")

	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrBookNotCurrent      = errors.New("book is not the current read")
)
