package checkup

import (
	"testing"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

func record(id, password string) vault.Record {
	return vault.Record{ID: id, Site: id + ".example", Username: "u", Password: password}
}

func TestWeakSortedAscending(t *testing.T) {
	records := []vault.Record{
		record("a", "abcdefg"),            // 28+15 = 43, not weak
		record("b", "ab"),                 // 8+15 = 23
		record("c", "a"),                  // 4+15 = 19
		record("d", "Aa1!aaaa"),           // 92, not weak
		record("e", "abc"),                // 12+15 = 27
	}

	weak := Weak(records)
	if len(weak) != 3 {
		t.Fatalf("got %d weak records, want 3", len(weak))
	}
	wantOrder := []string{"c", "b", "e"}
	for i, want := range wantOrder {
		if weak[i].Record.ID != want {
			t.Errorf("weak[%d] = %s (score %d), want %s", i, weak[i].Record.ID, weak[i].Score, want)
		}
	}
	for i := 1; i < len(weak); i++ {
		if weak[i].Score < weak[i-1].Score {
			t.Error("weak list not sorted ascending by score")
		}
	}
}

func TestWeakEmpty(t *testing.T) {
	if got := Weak(nil); len(got) != 0 {
		t.Errorf("Weak(nil) = %v", got)
	}
	if got := Weak([]vault.Record{record("a", "Str0ng!Passw0rd!")}); len(got) != 0 {
		t.Errorf("strong-only collection reported weak entries: %v", got)
	}
}

func TestDuplicatesFlagsLaterOccurrences(t *testing.T) {
	records := []vault.Record{
		record("a", "shared"),
		record("b", "unique"),
		record("c", "shared"),
		record("d", "shared"),
		record("e", "other"),
		record("f", "other"),
	}

	dups := Duplicates(records)
	if len(dups) != 3 {
		t.Fatalf("got %d duplicates, want 3", len(dups))
	}
	want := []struct{ id, first string }{
		{"c", "a"},
		{"d", "a"},
		{"f", "e"},
	}
	for i, w := range want {
		if dups[i].Record.ID != w.id || dups[i].FirstID != w.first {
			t.Errorf("dups[%d] = %s (first %s), want %s (first %s)",
				i, dups[i].Record.ID, dups[i].FirstID, w.id, w.first)
		}
	}
}

func TestDuplicatesNone(t *testing.T) {
	records := []vault.Record{record("a", "one"), record("b", "two")}
	if got := Duplicates(records); len(got) != 0 {
		t.Errorf("Duplicates = %v, want none", got)
	}
}

func TestHealth(t *testing.T) {
	records := []vault.Record{
		record("a", "Aa1!aaaa"),    // 92: strong
		record("b", "ab"),          // 23: weak
		record("c", "abcdefghij"),  // 55
	}

	report := Health(records)
	if report.Total != 3 {
		t.Errorf("Total = %d", report.Total)
	}
	// (92+23+55)/3 = 56.67, rounds to 57.
	if report.Average != 57 {
		t.Errorf("Average = %d, want 57", report.Average)
	}
	if report.Weak != 1 {
		t.Errorf("Weak = %d, want 1", report.Weak)
	}
	if report.Strong != 1 {
		t.Errorf("Strong = %d, want 1", report.Strong)
	}
	if report.Duplicates != 0 {
		t.Errorf("Duplicates = %d, want 0", report.Duplicates)
	}
}

func TestHealthEmpty(t *testing.T) {
	report := Health(nil)
	if report != (Report{}) {
		t.Errorf("Health(nil) = %+v, want zero report", report)
	}
}
