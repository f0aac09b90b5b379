package vault

import "errors"

// Errors
var (
	// ErrNotFound indicates the referenced id is not in the collection.
	ErrNotFound = errors.New("vault: record not found")

	// ErrMalformedSnapshot indicates the persisted snapshot could not be
	// parsed. Loading recovers by starting from an empty collection.
	ErrMalformedSnapshot = errors.New("vault: malformed persisted snapshot")
)
