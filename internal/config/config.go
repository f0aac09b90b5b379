// Package config loads guardian's configuration from a YAML file with
// environment overrides. All settings have working defaults; a missing
// config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in the config file.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Environment overrides. GUARDIAN_KEY is read and then cleared from the
// process environment so child processes do not inherit it.
const (
	EnvVaultDir = "GUARDIAN_VAULT_DIR"
	EnvKey      = "GUARDIAN_KEY"
	EnvBackend  = "GUARDIAN_BACKEND"
)

// FileName is the config file name inside the vault directory.
const FileName = "config.yaml"

// ErrUnknownBackend indicates a backend name other than sqlite or file.
var ErrUnknownBackend = errors.New("config: unknown storage backend")

// Config is the resolved configuration.
type Config struct {
	// VaultDir holds the blob store, audit log, and config file.
	// Defaults to ~/.guardian.
	VaultDir string `yaml:"vault_dir"`

	// Backend selects the blob store implementation.
	Backend string `yaml:"backend"`

	// Audit enables the tamper-evident operation log.
	Audit bool `yaml:"audit"`

	// Key is the session encryption key. Never read from or written to
	// the config file; comes from GUARDIAN_KEY or an interactive prompt.
	Key string `yaml:"-"`
}

func defaults() Config {
	return Config{Backend: BackendSQLite, Audit: true}
}

// DefaultDir returns the default vault directory, ~/.guardian.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".guardian"), nil
}

// Load resolves the configuration: defaults, then the YAML file in dir
// (if present), then environment overrides. An empty dir means the
// default directory, or GUARDIAN_VAULT_DIR when set.
func Load(dir string) (*Config, error) {
	cfg := defaults()

	if dir == "" {
		dir = os.Getenv(EnvVaultDir)
	}
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	cfg.VaultDir = dir

	raw, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", FileName, err)
		}
		// The file may not redirect the vault dir away from itself.
		cfg.VaultDir = dir
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("config: failed to read %s: %w", FileName, err)
	}

	if backend := os.Getenv(EnvBackend); backend != "" {
		cfg.Backend = backend
	}
	if key := os.Getenv(EnvKey); key != "" {
		cfg.Key = key
		os.Unsetenv(EnvKey)
	}

	switch cfg.Backend {
	case BackendSQLite, BackendFile:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	return &cfg, nil
}
