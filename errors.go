package studybuddy

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates submitted fields or an argument failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an operation referenced an unknown session ID.
	ErrNotFound = errors.New("session not found")
)
