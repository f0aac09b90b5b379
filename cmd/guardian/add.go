package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/generator"
	"github.com/tandouridev/password-guardian-vault/pkg/strength"
	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Add command flags
var (
	addUsername string
	addPassword string
	addCategory string
	addNote     string
	addURL      string
	addGenerate bool
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "account username or email")
	addCmd.Flags().StringVarP(&addPassword, "password", "p", "", "password (prompted if omitted; prefer the prompt, flags leak into shell history)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category label (default \"General\")")
	addCmd.Flags().StringVar(&addNote, "note", "", "free-text note")
	addCmd.Flags().StringVar(&addURL, "url", "", "login URL")
	addCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "generate a random password instead of prompting")
}

var addCmd = &cobra.Command{
	Use:   "add <site>",
	Short: "Add a credential record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := addPassword
		if addGenerate {
			generated, err := generator.Generate(generator.Default())
			if err != nil {
				return fmt.Errorf("failed to generate password: %w", err)
			}
			password = generated
		}
		if password == "" {
			entered, err := readHiddenLine("Password: ")
			if err != nil {
				return err
			}
			password = entered
		}

		id, err := store.Add(vault.Draft{
			Site:     args[0],
			Username: addUsername,
			Password: password,
			Category: addCategory,
			Note:     addNote,
			URL:      addURL,
		})
		if err != nil {
			return err
		}

		score := strength.Score(password)
		fmt.Printf("ID: %s\n", id)
		fmt.Printf("Strength: %d/100 (%s)\n", score, strength.ForScore(score).Label)
		if addGenerate {
			fmt.Printf("Generated password: %s\n", password)
		}
		return nil
	},
}
