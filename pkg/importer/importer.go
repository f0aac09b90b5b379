// Package importer parses credential files into the vault's import shape.
// Two formats are supported: the vault's own JSON export and the CSV
// export produced by Chrome, Edge, and Firefox password managers.
package importer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Format identifies a supported import file format.
type Format string

const (
	FormatJSON       Format = "json"
	FormatBrowserCSV Format = "csv"
)

// Result holds the parsed items together with non-fatal issues. A fatal
// error (wrong top-level shape, unreadable header) is returned from the
// parser instead; a Result is only produced when the batch as a whole is
// usable.
type Result struct {
	// Items are the successfully parsed records, ready for the store.
	Items []vault.ImportRecord

	// Warnings are non-fatal per-row issues encountered during parsing.
	Warnings []string

	// Skipped counts rows dropped for carrying no usable data.
	Skipped int
}

// Parse dispatches to the parser for the given format.
func Parse(format Format, data []byte) (*Result, error) {
	switch format {
	case FormatBrowserCSV:
		return ParseCSV(data)
	default:
		return ParseJSON(data)
	}
}

// DetectFormat guesses the format from a file name.
func DetectFormat(name string) Format {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return FormatBrowserCSV
	}
	return FormatJSON
}

// cleanField normalizes a parsed value: NFC form, surrounding whitespace
// trimmed. Browser exports mix composed and decomposed unicode for the
// same site name.
func cleanField(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
