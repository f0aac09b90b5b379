package main

import (
	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpServerCmd)
}

var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Run the MCP server over stdio",
	Long: `Run the Model Context Protocol server over stdio, exposing
read-only vault tools to AI agents. Plaintext passwords are never
returned; the strongest exposure is a masked value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(store, version)
		return server.Run(cmd.Context())
	},
}
