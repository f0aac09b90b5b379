package vault

import (
	"fmt"
	"log"
	"strings"

	"github.com/tandouridev/password-guardian-vault/pkg/audit"
)

// DefaultNotesKey is the blob-store key for the secure-note collection.
const DefaultNotesKey = "secure-notes-vault"

// Note is a free-form encrypted note. Content is stored encrypted; Title,
// Category, and Tags stay plaintext so the collection can be searched
// without decrypting anything.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// NoteDraft is the input for creating a note; Content is plaintext.
type NoteDraft struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// NotePatch carries the fields to change on an existing note. Nil fields
// are left untouched.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
}

// NoteStore holds secure notes. It persists to its own blob key and shares
// nothing with the credential store beyond the cipher and audit log.
type NoteStore struct {
	cfg   Config
	notes []Note
}

// OpenNotes loads the note collection. Load behavior mirrors Open: a
// missing snapshot is an empty collection, an unreadable one is discarded
// with a log line.
func OpenNotes(cfg Config) (*NoteStore, error) {
	cfg.fill(DefaultNotesKey)

	s := &NoteStore{cfg: cfg}

	raw, ok, err := cfg.Blob.Read(cfg.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to read note snapshot: %w", err)
	}
	if ok {
		notes, err := decodeSnapshot[Note](raw)
		if err != nil {
			log.Printf("vault: discarding unreadable snapshot %q: %v", cfg.StorageKey, err)
			s.auditError(audit.OpNotesLoad, "", err.Error())
		} else {
			s.notes = notes
		}
	}
	s.auditSuccess(audit.OpNotesLoad, "")

	return s, nil
}

func (s *NoteStore) Len() int {
	return len(s.notes)
}

// All returns the collection in insertion order, contents still encrypted.
func (s *NoteStore) All() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Add creates a note from a draft, encrypting its content.
func (s *NoteStore) Add(draft NoteDraft) (string, error) {
	encrypted, err := s.cfg.Cipher.Encrypt(draft.Content)
	if err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to save note")
		return "", fmt.Errorf("vault: failed to encrypt note: %w", err)
	}

	now := s.cfg.Now().UnixMilli()
	note := Note{
		ID:        s.cfg.NewID(),
		Title:     draft.Title,
		Content:   encrypted,
		Category:  draft.Category,
		Tags:      draft.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Category == "" {
		note.Category = DefaultCategory
	}

	s.notes = append(s.notes, note)
	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to save note")
		return "", err
	}

	s.auditSuccess(audit.OpNoteAdd, note.ID)
	s.cfg.Notifier.Notify(KindSuccess, "Note saved successfully")
	return note.ID, nil
}

// Update merges a patch into the note with the given id. Returns
// ErrNotFound for an unknown id.
func (s *NoteStore) Update(id string, patch NotePatch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		s.cfg.Notifier.Notify(KindError, "Note not found")
		return ErrNotFound
	}

	note := &s.notes[idx]
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		encrypted, err := s.cfg.Cipher.Encrypt(*patch.Content)
		if err != nil {
			s.cfg.Notifier.Notify(KindError, "Failed to update note")
			return fmt.Errorf("vault: failed to encrypt note: %w", err)
		}
		note.Content = encrypted
	}
	if patch.Category != nil {
		note.Category = *patch.Category
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}

	note.UpdatedAt = s.cfg.Now().UnixMilli()
	if note.UpdatedAt < note.CreatedAt {
		note.UpdatedAt = note.CreatedAt
	}

	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to update note")
		return err
	}

	s.auditSuccess(audit.OpNoteUpdate, id)
	s.cfg.Notifier.Notify(KindSuccess, "Note updated successfully")
	return nil
}

// Remove deletes the note with the given id; absent ids are a no-op.
func (s *NoteStore) Remove(id string) error {
	idx := s.indexOf(id)
	if idx >= 0 {
		s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
		if err := s.persist(); err != nil {
			s.cfg.Notifier.Notify(KindError, "Failed to delete note")
			return err
		}
		s.auditSuccess(audit.OpNoteDelete, id)
	}
	s.cfg.Notifier.Notify(KindSuccess, "Note deleted successfully")
	return nil
}

// Get returns a copy of the note with its content decrypted. Decryption
// failure yields an empty content, matching the credential store.
func (s *NoteStore) Get(id string) (Note, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Note{}, false
	}

	note := s.notes[idx]
	plaintext, err := s.cfg.Cipher.Decrypt(note.Content)
	if err != nil {
		log.Printf("vault: failed to decrypt note %s: %v", id, err)
		plaintext = ""
	}
	note.Content = plaintext
	return note, true
}

// Search matches the query against title, category, and tags,
// case-insensitively. Encrypted content is never searched.
func (s *NoteStore) Search(query string) []Note {
	if query == "" {
		return s.All()
	}

	q := strings.ToLower(query)
	var out []Note
	for _, note := range s.notes {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Category), q) ||
			tagsContain(note.Tags, q) {
			out = append(out, note)
		}
	}
	return out
}

// Clear removes every note and persists the empty collection.
func (s *NoteStore) Clear() error {
	s.notes = nil
	if err := s.persist(); err != nil {
		s.cfg.Notifier.Notify(KindError, "Failed to delete notes")
		return err
	}
	s.auditSuccess(audit.OpNotesClear, "")
	s.cfg.Notifier.Notify(KindSuccess, "All notes have been deleted")
	return nil
}

func tagsContain(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *NoteStore) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) persist() error {
	snapshot, err := encodeSnapshot(s.notes)
	if err != nil {
		return err
	}
	if err := s.cfg.Blob.Write(s.cfg.StorageKey, snapshot); err != nil {
		return fmt.Errorf("vault: failed to persist note snapshot: %w", err)
	}
	return nil
}

func (s *NoteStore) auditSuccess(op, id string) {
	if s.cfg.Audit == nil {
		return
	}
	if err := s.cfg.Audit.Success(op, id); err != nil {
		log.Printf("vault: audit logging failed: %v", err)
	}
}

func (s *NoteStore) auditError(op, id, detail string) {
	if s.cfg.Audit == nil {
		return
	}
	if err := s.cfg.Audit.Error(op, id, detail); err != nil {
		log.Printf("vault: audit logging failed: %v", err)
	}
}
