package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileMode = 0600 // Owner read/write only
	dirMode  = 0700 // Owner read/write/execute only
)

// FileStore persists each key as one file under a directory. Writes go
// through a temp file plus rename so a crash never leaves a half-written
// snapshot behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("blob: failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing this store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Read implements Store.
func (s *FileStore) Read(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("blob: failed to read %q: %w", key, err)
	}
	return string(data), true, nil
}

// Write implements Store.
func (s *FileStore) Write(key, value string) error {
	target := s.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), fileMode); err != nil {
		return fmt.Errorf("blob: failed to write %q: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("blob: failed to replace %q: %w", key, err)
	}
	return nil
}

// path maps a key to a file name, flattening separators so keys cannot
// escape the store directory.
func (s *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}
