package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/strength"
	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

var getShow bool

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getShow, "show", false, "print the plaintext password")
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a credential record",
	Long:  `Show a credential record. The password is masked unless --show is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("record not found: %s", args[0])
		}

		password := record.Password
		if !getShow {
			password = vault.Mask(password)
		}

		fmt.Printf("Site:     %s\n", record.Site)
		fmt.Printf("Username: %s\n", record.Username)
		fmt.Printf("Password: %s\n", password)
		fmt.Printf("Category: %s\n", record.Category)
		if record.URL != "" {
			fmt.Printf("URL:      %s\n", record.URL)
		}
		if record.Note != "" {
			fmt.Printf("Note:     %s\n", record.Note)
		}
		score := strength.Score(record.Password)
		fmt.Printf("Strength: %d/100 (%s)\n", score, strength.ForScore(score).Label)
		fmt.Printf("Created:  %s\n", formatMillis(record.CreatedAt))
		fmt.Printf("Updated:  %s\n", formatMillis(record.UpdatedAt))
		return nil
	},
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}
