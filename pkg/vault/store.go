package vault

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tandouridev/password-guardian-vault/pkg/audit"
	"github.com/tandouridev/password-guardian-vault/pkg/blob"
	"github.com/tandouridev/password-guardian-vault/pkg/crypto"
)

// DefaultStorageKey is the blob-store key for the credential collection.
const DefaultStorageKey = "password-guardian-vault"

// Config wires a store to its collaborators. Blob is required; a nil
// Cipher means the default session key, a nil Notifier discards messages
// and a nil Audit disables audit logging.
type Config struct {
	Blob     blob.Store
	Cipher   *crypto.Cipher
	Notifier Notifier
	Audit    *audit.Logger

	// StorageKey overrides the blob key for this collection.
	StorageKey string

	// Now and NewID are overridable for tests. Defaults: time.Now and
	// uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func (c *Config) fill(defaultKey string) {
	if c.Cipher == nil {
		c.Cipher = crypto.Default()
	}
	if c.Notifier == nil {
		c.Notifier = NopNotifier
	}
	if c.StorageKey == "" {
		c.StorageKey = defaultKey
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
}

// Store is the credential record store. It is single-writer by design: the
// surrounding application processes one operation at a time, so the store
// itself takes no locks.
type Store struct {
	cfg     Config
	records []Record
}

// Open loads the credential collection from the blob store. A missing
// snapshot yields an empty collection; an unparsable one is logged,
// audited, and also yields an empty collection so the vault stays usable.
func Open(cfg Config) (*Store, error) {
	cfg.fill(DefaultStorageKey)

	s := &Store{cfg: cfg}

	raw, ok, err := cfg.Blob.Read(cfg.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to read snapshot: %w", err)
	}
	if ok {
		records, err := decodeSnapshot[Record](raw)
		if err != nil {
			log.Printf("vault: discarding unreadable snapshot %q: %v", cfg.StorageKey, err)
			s.auditError(audit.OpVaultLoad, "", err.Error())
		} else {
			s.records = records
		}
	}
	s.auditSuccess(audit.OpVaultLoad, "")

	return s, nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of the collection in insertion order, passwords still
// encrypted. Use Get or Export for plaintext.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Decrypted returns a copy of the collection with every password
// decrypted, for analysis views. Entries that fail to decrypt carry an
// empty password.
func (s *Store) Decrypted() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	for i := range out {
		out[i].Password = s.decryptSoft(out[i].ID, out[i].Password)
	}
	return out
}

// Add creates a record from a draft: assigns id and timestamps, encrypts
// the password, appends, and persists. Returns the new id.
func (s *Store) Add(draft Draft) (string, error) {
	encrypted, err := s.cfg.Cipher.Encrypt(draft.Password)
	if err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to save password")
		return "", fmt.Errorf("vault: failed to encrypt password: %w", err)
	}

	now := s.nowMillis()
	record := Record{
		ID:        s.cfg.NewID(),
		Site:      draft.Site,
		Username:  draft.Username,
		Password:  encrypted,
		Category:  draft.Category,
		Note:      draft.Note,
		URL:       draft.URL,
		Favicon:   draft.Favicon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if record.Category == "" {
		record.Category = DefaultCategory
	}

	s.records = append(s.records, record)
	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to save password")
		return "", err
	}

	s.auditSuccess(audit.OpRecordAdd, record.ID)
	s.cfg.Notifier.Notify(KindSuccess, "Password saved successfully")
	return record.ID, nil
}

// Update merges a patch into the record with the given id. Returns
// ErrNotFound for an unknown id. A patched password is re-encrypted;
// UpdatedAt is always refreshed.
func (s *Store) Update(id string, patch Patch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		s.cfg.Notifier.Notify(KindError, "Password entry not found")
		return ErrNotFound
	}

	record := &s.records[idx]
	if patch.Site != nil {
		record.Site = *patch.Site
	}
	if patch.Username != nil {
		record.Username = *patch.Username
	}
	if patch.Password != nil {
		encrypted, err := s.cfg.Cipher.Encrypt(*patch.Password)
		if err != nil {
			s.cfg.Notifier.Notify(KindError, "Failed to update password")
			return fmt.Errorf("vault: failed to encrypt password: %w", err)
		}
		record.Password = encrypted
	}
	if patch.Category != nil {
		record.Category = *patch.Category
	}
	if patch.Note != nil {
		record.Note = *patch.Note
	}
	if patch.URL != nil {
		record.URL = *patch.URL
	}
	if patch.Favicon != nil {
		record.Favicon = *patch.Favicon
	}
	if patch.ExpiresAt != nil {
		record.ExpiresAt = *patch.ExpiresAt
	}

	record.UpdatedAt = s.nowMillis()
	if record.UpdatedAt < record.CreatedAt {
		record.UpdatedAt = record.CreatedAt
	}

	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to update password")
		return err
	}

	s.auditSuccess(audit.OpRecordUpdate, id)
	s.cfg.Notifier.Notify(KindSuccess, "Password updated successfully")
	return nil
}

// Remove deletes the record with the given id. An absent id is a no-op;
// deletion is irreversible.
func (s *Store) Remove(id string) error {
	idx := s.indexOf(id)
	if idx >= 0 {
		s.records = append(s.records[:idx], s.records[idx+1:]...)
		if err := s.persist(); err != nil {
			s.cfg.Notifier.Notify(KindError, "Failed to delete password")
			return err
		}
		s.auditSuccess(audit.OpRecordDelete, id)
	}
	s.cfg.Notifier.Notify(KindSuccess, "Password deleted successfully")
	return nil
}

// Get returns a copy of the record with its password decrypted, or
// ok=false for an unknown id. Decryption failure is recovered locally: the
// copy carries an empty password and the failure is logged.
func (s *Store) Get(id string) (Record, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}

	record := s.records[idx]
	record.Password = s.decryptSoft(record.ID, record.Password)
	return record, true
}

// Search returns records whose site, username, category, note, or url
// contains the query, case-insensitively. Passwords are never searched.
// An empty query returns the whole collection in insertion order.
func (s *Store) Search(query string) []Record {
	if query == "" {
		return s.All()
	}

	q := strings.ToLower(query)
	var out []Record
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.Site), q) ||
			strings.Contains(strings.ToLower(record.Username), q) ||
			strings.Contains(strings.ToLower(record.Category), q) ||
			strings.Contains(strings.ToLower(record.Note), q) ||
			strings.Contains(strings.ToLower(record.URL), q) {
			out = append(out, record)
		}
	}
	return out
}

// Import appends one record per item, all stamped with the same "now" and
// encrypted, then persists once. The batch either fully lands or, on a
// persistence failure, is rolled back from memory.
func (s *Store) Import(items []ImportRecord) error {
	now := s.nowMillis()

	batch := make([]Record, 0, len(items))
	for _, item := range items {
		encrypted, err := s.cfg.Cipher.Encrypt(item.Password)
		if err != nil {
			s.cfg.Notifier.Notify(KindError, "Failed to import passwords")
			return fmt.Errorf("vault: failed to encrypt imported password: %w", err)
		}
		category := item.Category
		if category == "" {
			category = DefaultCategory
		}
		batch = append(batch, Record{
			ID:        s.cfg.NewID(),
			Site:      item.Site,
			Username:  item.Username,
			Password:  encrypted,
			Category:  category,
			Note:      item.Note,
			URL:       item.URL,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	prev := s.records
	s.records = append(append([]Record{}, s.records...), batch...)
	if err := s.persist(); err != nil {
		s.records = prev
		s.cfg.Notifier.Notify(KindError, "Failed to import passwords")
		return err
	}

	s.auditSuccess(audit.OpRecordImport, "")
	s.cfg.Notifier.Notify(KindSuccess, fmt.Sprintf("Imported %d passwords successfully", len(items)))
	return nil
}

// Export returns every record in the narrow import/export shape with the
// password decrypted. Ids, timestamps, and extended fields are not part of
// this schema; import(export()) reproduces content, not identity.
func (s *Store) Export() []ImportRecord {
	out := make([]ImportRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, ImportRecord{
			Site:     record.Site,
			Username: record.Username,
			Password: s.decryptSoft(record.ID, record.Password),
			Category: record.Category,
			Note:     record.Note,
			URL:      record.URL,
		})
	}
	s.auditSuccess(audit.OpRecordExport, "")
	return out
}

// Clear removes every record and persists the empty collection.
func (s *Store) Clear() error {
	s.records = nil
	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to delete passwords")
		return err
	}
	s.auditSuccess(audit.OpVaultClear, "")
	s.cfg.Notifier.Notify(KindSuccess, "All passwords have been deleted")
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection back to the blob store. Every
// mutation ends here; the snapshot is the whole state, not a journal.
func (s *Store) persist() error {
	snapshot, err := encodeSnapshot(s.records)
	if err != nil {
		return err
	}
	if err := s.cfg.Blob.Write(s.cfg.StorageKey, snapshot); err != nil {
		return fmt.Errorf("vault: failed to persist snapshot: %w", err)
	}
	return nil
}

// decryptSoft applies the boundary contract for decryption failures:
// empty plaintext, a diagnostic log line, and an audit event. A corrupted
// entry must not break reads of the rest of the collection.
func (s *Store) decryptSoft(id, ciphertext string) string {
	plaintext, err := s.cfg.Cipher.Decrypt(ciphertext)
	if err != nil {
		log.Printf("vault: failed to decrypt password for record %s: %v", id, err)
		s.auditError(audit.OpDecryptFail, id, err.Error())
		return ""
	}
	return plaintext
}

func (s *Store) nowMillis() int64 {
	return s.cfg.Now().UnixMilli()
}

func (s *Store) auditSuccess(op, id string) {
	if s.cfg.Audit == nil {
		return
	}
	if err := s.cfg.Audit.Success(op, id); err != nil {
		log.Printf("vault: audit logging failed: %v", err)
	}
}

func (s *Store) auditError(op, id, detail string) {
	if s.cfg.Audit == nil {
		return
	}
	if err := s.cfg.Audit.Error(op, id, detail); err != nil {
		log.Printf("vault: audit logging failed: %v", err)
	}
}
