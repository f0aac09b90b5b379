package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tandouridev/password-guardian-vault/internal/config"
	"github.com/tandouridev/password-guardian-vault/pkg/audit"
	"github.com/tandouridev/password-guardian-vault/pkg/blob"
	"github.com/tandouridev/password-guardian-vault/pkg/crypto"
	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

const version = "0.1.0"

// Persistent flags
var (
	flagVaultDir  string
	flagPromptKey bool
)

// Shared state initialized by PersistentPreRunE.
var (
	cfg       *config.Config
	cipher    *crypto.Cipher
	store     *vault.Store
	auditLog  *audit.Logger
	sqliteDB  *blob.SQLiteStore
	blobStore blob.Store
)

var rootCmd = &cobra.Command{
	Use:     "guardian",
	Short:   "guardian is a local encrypted password vault",
	Long:    `A client-side password vault: credential records and secure notes, encrypted at rest, with strength analysis and import/export.`,
	Version: version,
	// The generate command works on pure randomness and must not require
	// a vault on disk.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "generate", "help", "completion":
			return nil
		}
		return openVault()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVaultDir, "vault-dir", "", "vault directory (default ~/.guardian, or GUARDIAN_VAULT_DIR)")
	rootCmd.PersistentFlags().BoolVar(&flagPromptKey, "prompt-key", false, "prompt for the encryption key instead of reading GUARDIAN_KEY")
}

// openVault resolves configuration and opens the credential store. Runs
// once per invocation before any vault-touching command.
func openVault() error {
	var err error
	cfg, err = config.Load(flagVaultDir)
	if err != nil {
		return err
	}

	if flagPromptKey {
		key, err := readHiddenLine("Encryption key: ")
		if err != nil {
			return err
		}
		cfg.Key = key
	}
	cipher = crypto.New(cfg.Key)

	if err := os.MkdirAll(cfg.VaultDir, 0o700); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}

	switch cfg.Backend {
	case config.BackendFile:
		blobStore, err = blob.NewFileStore(filepath.Join(cfg.VaultDir, "store"))
		if err != nil {
			return err
		}
	default:
		sqliteDB, err = blob.OpenSQLite(filepath.Join(cfg.VaultDir, "vault.db"))
		if err != nil {
			return err
		}
		blobStore = sqliteDB
	}

	if cfg.Audit {
		auditLog = audit.NewLogger(cfg.VaultDir)
		material := cfg.Key
		if material == "" {
			material = crypto.DefaultKey
		}
		if err := auditLog.SetKey([]byte(material)); err != nil {
			return err
		}
	}

	store, err = vault.Open(vault.Config{
		Blob:     blobStore,
		Cipher:   cipher,
		Notifier: stdoutNotifier(),
		Audit:    auditLog,
	})
	return err
}

// openNotes opens the secure-note collection on the same backend. Only
// the note commands need it.
func openNotes() (*vault.NoteStore, error) {
	return vault.OpenNotes(vault.Config{
		Blob:     blobStore,
		Cipher:   cipher,
		Notifier: stdoutNotifier(),
		Audit:    auditLog,
	})
}

func closeVault() {
	if sqliteDB != nil {
		sqliteDB.Close()
	}
}

// stdoutNotifier renders store outcome messages the way the original UI
// surfaced toasts: successes to stdout, failures to stderr.
func stdoutNotifier() vault.Notifier {
	return vault.NotifierFunc(func(kind vault.Kind, message string) {
		if kind == vault.KindError {
			fmt.Fprintln(os.Stderr, message)
			return
		}
		fmt.Println(message)
	})
}

// readHiddenLine reads a line without echo when stdin is a terminal,
// falling back to a plain read for piped input.
func readHiddenLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		line, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(line), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}
