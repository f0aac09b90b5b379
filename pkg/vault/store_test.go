package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tandouridev/password-guardian-vault/pkg/blob"
	"github.com/tandouridev/password-guardian-vault/pkg/crypto"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	var seq int
	return Config{
		Blob:   blob.NewMemStore(),
		Cipher: crypto.New("test-key"),
		Now:    func() time.Time { return time.UnixMilli(1700000000000) },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}
}

func openStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestStoreAddAndGet(t *testing.T) {
	s := openStore(t, testConfig(t))

	id, err := s.Add(Draft{Site: "github.com", Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != "id-1" {
		t.Errorf("id = %q, want id-1", id)
	}

	record, ok := s.Get(id)
	if !ok {
		t.Fatal("Get returned ok=false")
	}
	if record.Password != "s3cret" {
		t.Errorf("decrypted password = %q, want s3cret", record.Password)
	}
	if record.Category != DefaultCategory {
		t.Errorf("empty category should default to %q, got %q", DefaultCategory, record.Category)
	}
	if record.CreatedAt != 1700000000000 || record.UpdatedAt != 1700000000000 {
		t.Errorf("timestamps = %d/%d, want 1700000000000", record.CreatedAt, record.UpdatedAt)
	}
}

func TestStorePasswordEncryptedAtRest(t *testing.T) {
	cfg := testConfig(t)
	s := openStore(t, cfg)

	if _, err := s.Add(Draft{Site: "a", Username: "b", Password: "plaintext-password"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	raw, ok, err := cfg.Blob.Read(DefaultStorageKey)
	if err != nil || !ok {
		t.Fatalf("snapshot not persisted: ok=%v err=%v", ok, err)
	}
	if strings.Contains(raw, "plaintext-password") {
		t.Error("persisted snapshot contains the plaintext password")
	}

	// The in-memory view never holds plaintext either.
	if s.All()[0].Password == "plaintext-password" {
		t.Error("All exposes the plaintext password")
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	s := openStore(t, cfg)

	id, err := s.Add(Draft{Site: "example.org", Username: "bob", Password: "pw", Category: "Work"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reopened := openStore(t, cfg)
	record, ok := reopened.Get(id)
	if !ok {
		t.Fatal("record missing after reopen")
	}
	if record.Password != "pw" || record.Category != "Work" {
		t.Errorf("reopened record = %+v", record)
	}
}

func TestStoreUpdate(t *testing.T) {
	cfg := testConfig(t)
	clock := int64(1700000000000)
	cfg.Now = func() time.Time { return time.UnixMilli(clock) }
	s := openStore(t, cfg)

	id, _ := s.Add(Draft{Site: "old.example", Username: "u", Password: "old"})

	clock += 60_000
	site := "new.example"
	password := "new"
	if err := s.Update(id, Patch{Site: &site, Password: &password}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	record, _ := s.Get(id)
	if record.Site != "new.example" {
		t.Errorf("site = %q", record.Site)
	}
	if record.Password != "new" {
		t.Errorf("password = %q", record.Password)
	}
	if record.Username != "u" {
		t.Errorf("unpatched field changed: username = %q", record.Username)
	}
	if record.UpdatedAt <= record.CreatedAt {
		t.Errorf("UpdatedAt %d not after CreatedAt %d", record.UpdatedAt, record.CreatedAt)
	}
}

func TestStoreUpdateUnknownID(t *testing.T) {
	s := openStore(t, testConfig(t))

	site := "x"
	err := s.Update("missing", Patch{Site: &site})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreRemove(t *testing.T) {
	s := openStore(t, testConfig(t))

	id, _ := s.Add(Draft{Site: "a", Username: "u", Password: "p"})
	if err := s.Remove(id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := s.Get(id); ok {
		t.Error("record still present after Remove")
	}

	// Removing an absent id is a no-op.
	if err := s.Remove("missing"); err != nil {
		t.Errorf("Remove of absent id returned %v", err)
	}
}

func TestStoreSearch(t *testing.T) {
	s := openStore(t, testConfig(t))
	s.Add(Draft{Site: "GitHub.com", Username: "alice", Password: "p1", Category: "Dev"})
	s.Add(Draft{Site: "bank.example", Username: "bob", Password: "p2", Note: "shared GitHub token inside"})
	s.Add(Draft{Site: "mail.example", Username: "carol", Password: "p3", URL: "https://mail.example/login"})

	tests := []struct {
		query string
		want  int
	}{
		{"github", 2}, // site match + note match, case-insensitive
		{"alice", 1},
		{"dev", 1},
		{"/login", 1},
		{"", 3},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		got := s.Search(tt.query)
		if len(got) != tt.want {
			t.Errorf("Search(%q) returned %d records, want %d", tt.query, len(got), tt.want)
		}
	}

	// Plaintext passwords must not be searchable.
	if got := s.Search("p1"); len(got) != 0 {
		t.Errorf("Search matched a password: %d records", len(got))
	}
}

func TestStoreImportExport(t *testing.T) {
	s := openStore(t, testConfig(t))

	items := []ImportRecord{
		{Site: "a.example", Username: "a", Password: "pa"},
		{Site: "b.example", Username: "b", Password: "pb", Category: "Work", Note: "n", URL: "https://b.example"},
	}
	if err := s.Import(items); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	all := s.All()
	if all[0].CreatedAt != all[1].CreatedAt {
		t.Error("imported batch should share one timestamp")
	}
	if all[0].Category != DefaultCategory {
		t.Errorf("missing category should default, got %q", all[0].Category)
	}

	exported := s.Export()
	if len(exported) != 2 {
		t.Fatalf("Export returned %d items", len(exported))
	}
	if exported[0].Password != "pa" || exported[1].Password != "pb" {
		t.Errorf("exported passwords not decrypted: %q %q", exported[0].Password, exported[1].Password)
	}
	if exported[1].Note != "n" || exported[1].URL != "https://b.example" {
		t.Errorf("exported narrow fields wrong: %+v", exported[1])
	}

	// Export then import into a fresh store reproduces the content.
	fresh := openStore(t, testConfig(t))
	if err := fresh.Import(exported); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if fresh.Len() != 2 {
		t.Errorf("re-imported Len = %d", fresh.Len())
	}
}

// failingBlob wraps a Store and fails writes on demand.
type failingBlob struct {
	blob.Store
	failWrites bool
}

func (f *failingBlob) Write(key, value string) error {
	if f.failWrites {
		return errors.New("write failed")
	}
	return f.Store.Write(key, value)
}

func TestStoreImportFailureLeavesCollectionUntouched(t *testing.T) {
	cfg := testConfig(t)
	fb := &failingBlob{Store: cfg.Blob}
	cfg.Blob = fb
	s := openStore(t, cfg)

	id, err := s.Add(Draft{Site: "existing.example", Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	fb.failWrites = true
	err = s.Import([]ImportRecord{
		{Site: "a.example", Username: "a", Password: "pa"},
		{Site: "b.example", Username: "b", Password: "pb"},
	})
	if err == nil {
		t.Fatal("Import should fail when persistence fails")
	}

	// The in-memory collection rolls back to the pre-import state.
	if s.Len() != 1 {
		t.Errorf("Len = %d after failed import, want 1", s.Len())
	}
	if _, ok := s.Get(id); !ok {
		t.Error("pre-existing record lost after failed import")
	}

	// The persisted snapshot still holds only the original record.
	fb.failWrites = false
	reopened := openStore(t, cfg)
	if reopened.Len() != 1 {
		t.Errorf("persisted Len = %d after failed import, want 1", reopened.Len())
	}
	if _, ok := reopened.Get(id); !ok {
		t.Error("persisted snapshot missing the original record")
	}
}

func TestStoreClear(t *testing.T) {
	cfg := testConfig(t)
	s := openStore(t, cfg)
	s.Add(Draft{Site: "a", Username: "u", Password: "p"})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear", s.Len())
	}

	// The empty state must be persisted, not just in memory.
	if openStore(t, cfg).Len() != 0 {
		t.Error("cleared collection came back after reopen")
	}
}

func TestStoreOpenRecoversFromMalformedSnapshot(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.Blob.Write(DefaultStorageKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	s := openStore(t, cfg)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 after discarding malformed snapshot", s.Len())
	}

	// The store stays usable afterwards.
	if _, err := s.Add(Draft{Site: "a", Username: "u", Password: "p"}); err != nil {
		t.Errorf("Add after recovery failed: %v", err)
	}
}

func TestStoreOpenLegacyArraySnapshot(t *testing.T) {
	cfg := testConfig(t)
	cipher := cfg.Cipher
	encrypted, err := cipher.Encrypt("legacy-pw")
	if err != nil {
		t.Fatal(err)
	}
	legacy, _ := json.Marshal([]Record{{
		ID: "legacy-1", Site: "old.example", Username: "u", Password: encrypted,
		Category: "General", CreatedAt: 1, UpdatedAt: 1,
	}})
	if err := cfg.Blob.Write(DefaultStorageKey, string(legacy)); err != nil {
		t.Fatal(err)
	}

	s := openStore(t, cfg)
	record, ok := s.Get("legacy-1")
	if !ok {
		t.Fatal("legacy record not loaded")
	}
	if record.Password != "legacy-pw" {
		t.Errorf("password = %q", record.Password)
	}
}

func TestStoreGetDecryptFailureSoftFails(t *testing.T) {
	cfg := testConfig(t)
	s := openStore(t, cfg)

	otherCipher := crypto.New("another-key")
	encrypted, err := otherCipher.Encrypt("unreachable")
	if err != nil {
		t.Fatal(err)
	}
	foreign, _ := json.Marshal([]Record{{ID: "r1", Site: "a", Username: "u", Password: encrypted}})
	if err := cfg.Blob.Write(DefaultStorageKey, string(foreign)); err != nil {
		t.Fatal(err)
	}

	s = openStore(t, cfg)
	record, ok := s.Get("r1")
	if !ok {
		t.Fatal("record missing")
	}
	if record.Password != "" {
		t.Errorf("undecryptable password = %q, want empty string", record.Password)
	}
	if record.Site != "a" {
		t.Errorf("metadata lost on decrypt failure: %+v", record)
	}
}

func TestStoreNotifications(t *testing.T) {
	var messages []string
	cfg := testConfig(t)
	cfg.Notifier = NotifierFunc(func(kind Kind, message string) {
		messages = append(messages, string(kind)+": "+message)
	})
	s := openStore(t, cfg)

	id, _ := s.Add(Draft{Site: "a", Username: "u", Password: "p"})
	site := "b"
	s.Update(id, Patch{Site: &site})
	s.Remove(id)
	s.Import([]ImportRecord{{Site: "c", Username: "v", Password: "q"}})
	s.Clear()

	want := []string{
		"success: Password saved successfully",
		"success: Password updated successfully",
		"success: Password deleted successfully",
		"success: Imported 1 passwords successfully",
		"success: All passwords have been deleted",
	}
	if len(messages) != len(want) {
		t.Fatalf("got %d messages: %v", len(messages), messages)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("message[%d] = %q, want %q", i, messages[i], want[i])
		}
	}
}
