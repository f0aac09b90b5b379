// Package checkup derives health reports from the decrypted vault
// contents. Everything here is a pure read over a record slice; the
// package holds no state and never mutates the store.
package checkup

import (
	"sort"

	"github.com/tandouridev/password-guardian-vault/pkg/strength"
	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Thresholds for the weak/strong buckets, in scorer points.
const (
	WeakThreshold   = 40
	StrongThreshold = 80
)

// ScoredRecord pairs a record with its strength score.
type ScoredRecord struct {
	Record vault.Record
	Score  int
}

// Weak returns every record scoring below WeakThreshold, weakest first.
// Records must carry plaintext passwords (vault.Store.Decrypted).
func Weak(records []vault.Record) []ScoredRecord {
	var out []ScoredRecord
	for _, record := range records {
		score := strength.Score(record.Password)
		if score < WeakThreshold {
			out = append(out, ScoredRecord{Record: record, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// Duplicates returns every record whose plaintext password was already
// seen earlier in the collection. The first record holding a value is not
// flagged; every later holder is, paired with the id of that first record.
func Duplicates(records []vault.Record) []Duplicate {
	firstSeen := make(map[string]string, len(records))
	var out []Duplicate
	for _, record := range records {
		if originalID, ok := firstSeen[record.Password]; ok {
			out = append(out, Duplicate{Record: record, FirstID: originalID})
			continue
		}
		firstSeen[record.Password] = record.ID
	}
	return out
}

// Duplicate is a record that reuses an earlier record's password.
type Duplicate struct {
	Record  vault.Record
	FirstID string
}

// Report aggregates collection-wide strength numbers.
type Report struct {
	Total      int `json:"total"`
	Average    int `json:"average"`
	Weak       int `json:"weak"`
	Strong     int `json:"strong"`
	Duplicates int `json:"duplicates"`
}

// Health computes the aggregate report. The average is the rounded
// arithmetic mean of all scores, 0 for an empty collection.
func Health(records []vault.Record) Report {
	report := Report{Total: len(records)}
	if len(records) == 0 {
		return report
	}

	sum := 0
	for _, record := range records {
		score := strength.Score(record.Password)
		sum += score
		if score < WeakThreshold {
			report.Weak++
		}
		if score >= StrongThreshold {
			report.Strong++
		}
	}
	report.Average = (sum + len(records)/2) / len(records)
	report.Duplicates = len(Duplicates(records))
	return report
}
