package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// ErrNotAnArray indicates the import payload's top level is not a JSON
// array. The whole file is rejected; nothing is partially imported.
var ErrNotAnArray = errors.New("importer: import file must be a JSON array")

// ParseJSON parses the vault's own export format: a JSON array of
// {site, username, password, category?, note?, url?} objects. Any other
// top-level shape fails wholesale. Rows with no site, username, or
// password are skipped with a warning.
func ParseJSON(data []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAnArray
	}

	var items []vault.ImportRecord
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("importer: failed to parse import file: %w", err)
	}

	result := &Result{Items: make([]vault.ImportRecord, 0, len(items))}
	for i, item := range items {
		item.Site = cleanField(item.Site)
		item.Username = cleanField(item.Username)
		item.Category = cleanField(item.Category)
		item.Note = cleanField(item.Note)
		item.URL = cleanField(item.URL)

		if item.Site == "" && item.Username == "" && item.Password == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %d: skipped, no usable data", i+1))
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

// MarshalExport serializes records into the import/export format, indented
// for hand inspection. The output of MarshalExport is always accepted by
// ParseJSON.
func MarshalExport(items []vault.ImportRecord) ([]byte, error) {
	if items == nil {
		items = []vault.ImportRecord{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("importer: failed to marshal export: %w", err)
	}
	return data, nil
}
