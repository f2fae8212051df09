package storage

import "errors"

// Common client storage errors
var (
	// ErrCredentialNotFound indicates that no credential pair is stored
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrActionNotFound indicates that a queued action was not found
	ErrActionNotFound = errors.New("queued action not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
