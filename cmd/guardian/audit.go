package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/internal/config"
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the vault's audit log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the audit log's HMAC chain",
	Long: `Verify the audit log's HMAC chain. A valid chain means no logged
event has been altered, reordered, or removed since it was written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if auditLog == nil {
			return fmt.Errorf("audit logging is disabled (set audit: true in %s)",
				filepath.Join(cfg.VaultDir, config.FileName))
		}

		result, err := auditLog.Verify()
		if err != nil {
			return err
		}

		fmt.Printf("Events: %d\n", result.Events)
		if result.Valid {
			fmt.Println("Chain:  valid")
			return nil
		}
		return fmt.Errorf("audit chain broken at sequence(s) %v", result.Broken)
	},
}
