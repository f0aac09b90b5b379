package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// snapshotVersion is the current envelope version. Legacy snapshots are a
// bare JSON array with no version field; both shapes are accepted on load.
const snapshotVersion = 1

// envelope is the versioned snapshot wrapper written since v1.
type envelope struct {
	Version int             `json:"version"`
	Entries json.RawMessage `json:"entries"`
}

// encodeSnapshot serializes a collection into the versioned envelope.
func encodeSnapshot[T any](entries []T) (string, error) {
	if entries == nil {
		entries = []T{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("vault: failed to marshal entries: %w", err)
	}
	data, err := json.Marshal(envelope{Version: snapshotVersion, Entries: raw})
	if err != nil {
		return "", fmt.Errorf("vault: failed to marshal snapshot: %w", err)
	}
	return string(data), nil
}

// decodeSnapshot parses a persisted snapshot, accepting both the versioned
// envelope and the unversioned legacy array shape.
func decodeSnapshot[T any](data string) ([]T, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if len(trimmed) == 0 {
		return nil, nil
	}

	// Legacy shape: a bare JSON array of entries.
	if trimmed[0] == '[' {
		var entries []T
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		return entries, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	// A JSON object without a positive version is some other document,
	// not a snapshot envelope.
	if env.Version < 1 {
		return nil, fmt.Errorf("%w: missing version field", ErrMalformedSnapshot)
	}
	if env.Version > snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, env.Version)
	}
	if len(env.Entries) == 0 {
		return nil, nil
	}

	var entries []T
	if err := json.Unmarshal(env.Entries, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return entries, nil
}
