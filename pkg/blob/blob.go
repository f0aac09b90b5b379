// Package blob provides the key-value blob stores that persist vault
// snapshots. A Store holds one opaque string value per key; the vault layer
// decides what those values contain.
package blob

import "sync"

// Store is the persistence collaborator consumed by the vault layer.
// Read reports absence via the bool rather than an error so callers can
// distinguish "no snapshot yet" from an I/O failure.
type Store interface {
	// Read returns the value for key, or ok=false when the key is absent.
	Read(key string) (value string, ok bool, err error)

	// Write stores value under key, replacing any previous value.
	Write(key, value string) error
}

// MemStore is an in-memory Store, used by tests and as the non-persistent
// fallback. The zero value is not usable; call NewMemStore.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

// Read implements Store.
func (s *MemStore) Read(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Write implements Store.
func (s *MemStore) Write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
