// Package audit provides an append-only operation log with an HMAC chain
// for tamper detection. The log records which vault operations happened and
// when, never plaintext secrets; record ids are logged as-is since they are
// opaque UUIDs.
package audit

import (
	"bufio"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/hkdf"
)

// Operation types.
const (
	OpVaultLoad    = "vault.load"
	OpRecordAdd    = "record.add"
	OpRecordUpdate = "record.update"
	OpRecordDelete = "record.delete"
	OpRecordImport = "record.import"
	OpRecordExport = "record.export"
	OpVaultClear   = "vault.clear"
	OpNoteAdd      = "note.add"
	OpNoteUpdate   = "note.update"
	OpNoteDelete   = "note.delete"
	OpNotesLoad    = "notes.load"
	OpNotesClear   = "notes.clear"
	OpDecryptFail  = "decrypt.failed"
)

// Result values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

const (
	logFileName = "audit.jsonl"
	fileMode    = 0600
	dirMode     = 0700

	genesisHash = "genesis"
)

// ErrKeyNotSet is returned when logging before SetKey.
var ErrKeyNotSet = errors.New("audit: HMAC key not set")

// Event is a single audit log record.
type Event struct {
	Version   int    `json:"v"`
	Timestamp string `json:"ts"` // RFC 3339 nanosecond precision
	Operation string `json:"op"`
	RecordID  string `json:"record_id,omitempty"`
	Result    string `json:"result"`
	Detail    string `json:"detail,omitempty"`

	// Tamper detection
	Sequence int64  `json:"seq"`
	PrevHMAC string `json:"prev"`
	HMAC     string `json:"hmac"`
}

// Logger appends events to a JSONL file, chaining each record's HMAC over
// the previous one so deletion or edits in the middle are detectable.
type Logger struct {
	mu       sync.Mutex
	dir      string
	key      []byte
	sequence int64
	prevHMAC string
	loaded   bool
}

// NewLogger creates a logger writing under dir. The HMAC key must be set
// with SetKey before events can be recorded.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir, prevHMAC: genesisHash}
}

// SetKey derives the chain HMAC key from key material (typically the cipher
// key string) using HKDF-SHA256.
func (l *Logger) SetKey(material []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := hkdf.New(sha256.New, material, nil, []byte("password-guardian-vault/audit/v1"))
	l.key = make([]byte, 32)
	if _, err := r.Read(l.key); err != nil {
		return fmt.Errorf("audit: failed to derive HMAC key: %w", err)
	}
	return nil
}

// Log appends an event. Failures here should not abort vault operations;
// callers ignore the returned error after surfacing it as a warning.
func (l *Logger) Log(op, recordID, result, detail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.key == nil {
		return ErrKeyNotSet
	}

	if !l.loaded {
		if err := l.loadChainState(); err != nil {
			return err
		}
		l.loaded = true
	}

	if err := os.MkdirAll(l.dir, dirMode); err != nil {
		return fmt.Errorf("audit: failed to create directory: %w", err)
	}

	l.sequence++
	event := Event{
		Version:   1,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Operation: op,
		RecordID:  recordID,
		Result:    result,
		Detail:    detail,
		Sequence:  l.sequence,
		PrevHMAC:  l.prevHMAC,
	}
	event.HMAC = l.sign(&event)
	l.prevHMAC = event.HMAC

	return l.append(&event)
}

// Success records a successful operation.
func (l *Logger) Success(op, recordID string) error {
	return l.Log(op, recordID, ResultSuccess, "")
}

// Error records a failed operation.
func (l *Logger) Error(op, recordID, detail string) error {
	return l.Log(op, recordID, ResultError, detail)
}

// sign computes the chain HMAC over every significant field.
func (l *Logger) sign(event *Event) string {
	data := fmt.Sprintf("%d|%s|%s|%s|%s|%s|%d|%s",
		event.Version,
		event.Timestamp,
		event.Operation,
		event.RecordID,
		event.Result,
		event.Detail,
		event.Sequence,
		event.PrevHMAC,
	)
	mac := hmac.New(sha256.New, l.key)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func (l *Logger) append(event *Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit: failed to marshal event: %w", err)
	}

	f, err := os.OpenFile(l.logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("audit: failed to open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: failed to append event: %w", err)
	}
	return nil
}

// loadChainState resumes the chain from the last line of an existing log.
func (l *Logger) loadChainState() error {
	f, err := os.Open(l.logPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("audit: failed to open log: %w", err)
	}
	defer f.Close()

	var last Event
	found := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		last = event
		found = true
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("audit: failed to scan log: %w", err)
	}

	if found {
		l.sequence = last.Sequence
		l.prevHMAC = last.HMAC
	}
	return nil
}

// VerifyResult reports the outcome of a chain verification pass.
type VerifyResult struct {
	Events int
	Valid  bool
	Broken []int64 // Sequence numbers whose chain or HMAC check failed
}

// Verify walks the whole log and checks every record's HMAC and chain link.
func (l *Logger) Verify() (*VerifyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.key == nil {
		return nil, ErrKeyNotSet
	}

	f, err := os.Open(l.logPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &VerifyResult{Valid: true}, nil
		}
		return nil, fmt.Errorf("audit: failed to open log: %w", err)
	}
	defer f.Close()

	result := &VerifyResult{Valid: true}
	prev := genesisHash

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			result.Valid = false
			result.Broken = append(result.Broken, -1)
			continue
		}
		result.Events++

		want := event.HMAC
		event.HMAC = ""
		got := l.sign(&Event{
			Version:   event.Version,
			Timestamp: event.Timestamp,
			Operation: event.Operation,
			RecordID:  event.RecordID,
			Result:    event.Result,
			Detail:    event.Detail,
			Sequence:  event.Sequence,
			PrevHMAC:  event.PrevHMAC,
		})

		if got != want || event.PrevHMAC != prev {
			result.Valid = false
			result.Broken = append(result.Broken, event.Sequence)
		}
		prev = want
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: failed to scan log: %w", err)
	}

	return result, nil
}

func (l *Logger) logPath() string {
	return filepath.Join(l.dir, logFileName)
}
