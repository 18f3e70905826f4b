package domain

import "errors"

// Error kinds. Package-level errors across the service wrap one of these,
// so the transport layer can map any error to a response class with errors.Is.
var (
	// ErrValidation missing or malformed input
	ErrValidation = errors.New("validation error")

	// ErrNotFound referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict slot already taken, duplicate review, concurrent change
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition illegal booking lifecycle transition
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden caller does not own the entity
	ErrForbidden = errors.New("forbidden")
)
