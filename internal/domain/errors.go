package domain

import "errors"

var (
	// ErrNotFound is returned when a document does not exist, or when a
	// conditional status transition matched no pending document.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed or missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatus is returned when a status transition is not allowed
	// from the record's current state.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrInvalidCredentials is returned on failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
