package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Browser password-export column names. Chrome and Edge emit
// name,url,username,password,note; Firefox emits url,username,password
// plus metadata columns. Parsing is header-based, so column order and
// extra columns do not matter.
const (
	csvColName     = "name"
	csvColURL      = "url"
	csvColUsername = "username"
	csvColPassword = "password"
	csvColNote     = "note"
)

// ErrMissingColumns indicates the CSV header has neither a name nor a url
// column, so rows cannot be attributed to a site.
var ErrMissingColumns = errors.New("importer: csv header missing name and url columns")

// ParseCSV parses a browser password export. Malformed rows are reported
// as warnings and skipped; a bad header fails the whole file.
func ParseCSV(data []byte) (*Result, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("importer: failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, hasName := colIndex[csvColName]; !hasName {
		if _, hasURL := colIndex[csvColURL]; !hasURL {
			return nil, ErrMissingColumns
		}
	}

	result := &Result{}
	rowNum := 1
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: failed to parse: %v", rowNum, err))
			continue
		}

		getValue := func(col string) string {
			if idx, ok := colIndex[col]; ok && idx < len(row) {
				return cleanField(row[idx])
			}
			return ""
		}

		item := vault.ImportRecord{
			Site:     getValue(csvColName),
			URL:      getValue(csvColURL),
			Username: getValue(csvColUsername),
			Password: getValue(csvColPassword),
			Note:     getValue(csvColNote),
		}
		if item.Site == "" {
			item.Site = siteFromURL(item.URL)
		}

		if item.Site == "" && item.Username == "" && item.Password == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: skipped, no usable data", rowNum))
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// siteFromURL derives a display name from a URL when the export has no
// name column: scheme and path are stripped, leaving the host.
func siteFromURL(url string) string {
	s := url
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
