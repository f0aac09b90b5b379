package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tandouridev/password-guardian-vault/pkg/checkup"
	"github.com/tandouridev/password-guardian-vault/pkg/strength"
	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// RecordInfo is record metadata without any password material.
type RecordInfo struct {
	ID        string `json:"id"`
	Site      string `json:"site"`
	Username  string `json:"username"`
	Category  string `json:"category"`
	URL       string `json:"url,omitempty"`
	HasNote   bool   `json:"has_note"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListInput represents input for the vault_list tool.
type ListInput struct {
	Category string `json:"category,omitempty"`
}

// ListOutput represents output for the vault_list tool.
type ListOutput struct {
	Records []RecordInfo `json:"records"`
	Total   int          `json:"total"`
}

// SearchInput represents input for the vault_search tool.
type SearchInput struct {
	Query string `json:"query"`
}

// GetMaskedInput represents input for the vault_get_masked tool.
type GetMaskedInput struct {
	ID string `json:"id"`
}

// GetMaskedOutput represents output for the vault_get_masked tool.
type GetMaskedOutput struct {
	ID             string `json:"id"`
	Site           string `json:"site"`
	Username       string `json:"username"`
	MaskedPassword string `json:"masked_password"`
	PasswordLength int    `json:"password_length"`
	Strength       int    `json:"strength"`
	Band           string `json:"band"`
}

// HealthInput represents input for the vault_health tool.
type HealthInput struct{}

func (s *Server) handleList(_ context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	var records []RecordInfo
	for _, record := range s.store.All() {
		if input.Category != "" && !strings.EqualFold(record.Category, input.Category) {
			continue
		}
		records = append(records, toInfo(record))
	}
	return nil, ListOutput{Records: records, Total: len(records)}, nil
}

func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, ListOutput, error) {
	var records []RecordInfo
	for _, record := range s.store.Search(input.Query) {
		records = append(records, toInfo(record))
	}
	return nil, ListOutput{Records: records, Total: len(records)}, nil
}

func (s *Server) handleGetMasked(_ context.Context, _ *mcp.CallToolRequest, input GetMaskedInput) (*mcp.CallToolResult, GetMaskedOutput, error) {
	record, ok := s.store.Get(input.ID)
	if !ok {
		return nil, GetMaskedOutput{}, fmt.Errorf("record not found: %s", input.ID)
	}

	score := strength.Score(record.Password)
	return nil, GetMaskedOutput{
		ID:             record.ID,
		Site:           record.Site,
		Username:       record.Username,
		MaskedPassword: vault.Mask(record.Password),
		PasswordLength: len(record.Password),
		Strength:       score,
		Band:           strength.ForScore(score).Label,
	}, nil
}

func (s *Server) handleHealth(_ context.Context, _ *mcp.CallToolRequest, _ HealthInput) (*mcp.CallToolResult, checkup.Report, error) {
	return nil, checkup.Health(s.store.Decrypted()), nil
}

func toInfo(record vault.Record) RecordInfo {
	return RecordInfo{
		ID:        record.ID,
		Site:      record.Site,
		Username:  record.Username,
		Category:  record.Category,
		URL:       record.URL,
		HasNote:   record.Note != "",
		CreatedAt: time.UnixMilli(record.CreatedAt).UTC().Format(time.RFC3339),
		UpdatedAt: time.UnixMilli(record.UpdatedAt).UTC().Format(time.RFC3339),
	}
}
