package main

import (
	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Update command flags
var (
	updateSite     string
	updateUsername string
	updatePassword string
	updateCategory string
	updateNote     string
	updateURL      string
	updatePrompt   bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateSite, "site", "", "new site name")
	updateCmd.Flags().StringVarP(&updateUsername, "username", "u", "", "new username")
	updateCmd.Flags().StringVarP(&updatePassword, "password", "p", "", "new password")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "new category")
	updateCmd.Flags().StringVar(&updateNote, "note", "", "new note")
	updateCmd.Flags().StringVar(&updateURL, "url", "", "new URL")
	updateCmd.Flags().BoolVar(&updatePrompt, "prompt-password", false, "prompt for the new password without echo")
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a credential record",
	Long: `Update fields of a credential record. Only the flags you pass are
changed; a changed password is re-encrypted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch vault.Patch
		if cmd.Flags().Changed("site") {
			patch.Site = &updateSite
		}
		if cmd.Flags().Changed("username") {
			patch.Username = &updateUsername
		}
		if cmd.Flags().Changed("password") {
			patch.Password = &updatePassword
		}
		if updatePrompt {
			entered, err := readHiddenLine("New password: ")
			if err != nil {
				return err
			}
			patch.Password = &entered
		}
		if cmd.Flags().Changed("category") {
			patch.Category = &updateCategory
		}
		if cmd.Flags().Changed("note") {
			patch.Note = &updateNote
		}
		if cmd.Flags().Changed("url") {
			patch.URL = &updateURL
		}

		return store.Update(args[0], patch)
	},
}
