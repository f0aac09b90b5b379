package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	l := NewLogger(t.TempDir())
	if err := l.SetKey([]byte("test-key-material")); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}
	return l
}

func TestLogRequiresKey(t *testing.T) {
	l := NewLogger(t.TempDir())
	if err := l.Success(OpRecordAdd, "id-1"); !errors.Is(err, ErrKeyNotSet) {
		t.Errorf("expected ErrKeyNotSet, got %v", err)
	}
}

func TestLogAndVerify(t *testing.T) {
	l := newTestLogger(t)

	if err := l.Success(OpRecordAdd, "id-1"); err != nil {
		t.Fatalf("Success failed: %v", err)
	}
	if err := l.Success(OpRecordUpdate, "id-1"); err != nil {
		t.Fatalf("Success failed: %v", err)
	}
	if err := l.Error(OpDecryptFail, "id-2", "malformed ciphertext"); err != nil {
		t.Fatalf("Error failed: %v", err)
	}

	result, err := l.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid chain, broken=%v", result.Broken)
	}
	if result.Events != 3 {
		t.Errorf("expected 3 events, got %d", result.Events)
	}
}

func TestVerifyEmptyLog(t *testing.T) {
	l := newTestLogger(t)
	result, err := l.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Valid || result.Events != 0 {
		t.Errorf("expected valid empty result, got %+v", result)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger(dir)
	if err := l.SetKey([]byte("test-key-material")); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := l.Success(OpRecordAdd, "id"); err != nil {
			t.Fatalf("Success failed: %v", err)
		}
	}

	// Flip the operation of the middle record.
	path := filepath.Join(dir, logFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	var event Event
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	event.Operation = OpVaultClear
	tampered, _ := json.Marshal(event)
	lines[1] = string(tampered)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	result, err := l.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Valid {
		t.Error("expected tampering to be detected")
	}
	if len(result.Broken) == 0 || result.Broken[0] != 2 {
		t.Errorf("expected sequence 2 flagged, got %v", result.Broken)
	}
}

func TestChainResumesAcrossLoggers(t *testing.T) {
	dir := t.TempDir()

	first := NewLogger(dir)
	if err := first.SetKey([]byte("key")); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}
	if err := first.Success(OpRecordAdd, "id-1"); err != nil {
		t.Fatalf("Success failed: %v", err)
	}

	// A fresh logger over the same directory must continue the chain.
	second := NewLogger(dir)
	if err := second.SetKey([]byte("key")); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}
	if err := second.Success(OpRecordDelete, "id-1"); err != nil {
		t.Fatalf("Success failed: %v", err)
	}

	result, err := second.Verify()
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Valid || result.Events != 2 {
		t.Errorf("expected contiguous valid chain of 2 events, got %+v", result)
	}
}
