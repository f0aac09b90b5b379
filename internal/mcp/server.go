// Package mcp implements the MCP (Model Context Protocol) server for
// guardian. Every tool is read-only and plaintext passwords are never
// returned to agents; the strongest exposure is a masked value.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

const serverName = "guardian"

// Server exposes a read-only view of an opened vault over MCP.
type Server struct {
	server *mcp.Server
	store  *vault.Store
}

// NewServer wraps an already-opened store. The caller owns key handling;
// the server never sees key material.
func NewServer(store *vault.Store, version string) *Server {
	s := &Server{
		server: mcp.NewServer(
			&mcp.Implementation{Name: serverName, Version: version},
			nil,
		),
		store: store,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_list",
		Description: "List credential records with metadata. Returns site, username, category, and timestamps. Does NOT return passwords.",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_search",
		Description: "Search records by case-insensitive substring across site, username, category, note, and url. Passwords are never searched or returned.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_get_masked",
		Description: "Get a record with its password masked (e.g. '****WXYZ') plus its strength score. Useful for verifying a credential exists without exposing it.",
	}, s.handleGetMasked)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vault_health",
		Description: "Aggregate password health: average strength, weak/strong/duplicate counts.",
	}, s.handleHealth)
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
