// Package vault implements the encrypted record store: credential records
// and secure notes kept in memory with sensitive fields as ciphertext,
// persisted as full snapshots to a blob store after every mutation.
package vault

// Record is a single credential entry. Password holds ciphertext at rest;
// plaintext only appears on copies returned by Get and Export.
//
// The extended fields (ExpiresAt, History, Shared, BreachDetected,
// LastBreachCheck) are part of the snapshot schema and round-trip through
// serialization, but no operation in this package populates them.
type Record struct {
	ID       string `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
	URL      string `json:"url,omitempty"`
	Favicon  string `json:"favicon,omitempty"`

	// Epoch milliseconds. CreatedAt is immutable; UpdatedAt is refreshed on
	// every mutation and never precedes CreatedAt.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	ExpiresAt       int64          `json:"expiresAt,omitempty"`
	History         []HistoryEntry `json:"history,omitempty"`
	Shared          []ShareGrant   `json:"shared,omitempty"`
	BreachDetected  bool           `json:"breachDetected,omitempty"`
	LastBreachCheck int64          `json:"lastBreachCheck,omitempty"`
}

// HistoryEntry is a previous password value, kept as ciphertext.
type HistoryEntry struct {
	Password  string `json:"password"`
	ChangedAt int64  `json:"changedAt"`
}

// AccessLevel is the permission attached to a share grant.
type AccessLevel string

const (
	AccessView AccessLevel = "view"
	AccessEdit AccessLevel = "edit"
)

// ShareGrant records that a record was shared with someone.
type ShareGrant struct {
	Email       string      `json:"email"`
	AccessLevel AccessLevel `json:"accessLevel"`
	SharedAt    int64       `json:"sharedAt"`
}

// Draft is the caller-supplied portion of a new record. Password is
// plaintext here; the store encrypts it before keeping it.
type Draft struct {
	Site     string
	Username string
	Password string
	Category string
	Note     string
	URL      string
	Favicon  string
}

// Patch is a partial update. Nil fields are left untouched; a non-nil
// Password is re-encrypted.
type Patch struct {
	Site      *string
	Username  *string
	Password  *string
	Category  *string
	Note      *string
	URL       *string
	Favicon   *string
	ExpiresAt *int64
}

// ImportRecord is the import/export wire shape: plaintext password, no id
// or timestamps. Deliberately narrower than the snapshot schema.
type ImportRecord struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
	Category string `json:"category,omitempty"`
	Note     string `json:"note,omitempty"`
	URL      string `json:"url,omitempty"`
}

// DefaultCategory is assigned when a record arrives without one.
const DefaultCategory = "General"
