package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced memo or user does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation marks 400-class failures from malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks expired or invalid credentials/tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransport marks network-level failures, distinct from API errors
	// so callers can decide to retry.
	ErrTransport = errors.New("transport failure")

	// ErrMemoNotArchived is returned when permanent deletion is attempted
	// on a memo that was never archived.
	ErrMemoNotArchived = errors.New("memo must be archived before permanent deletion")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)
