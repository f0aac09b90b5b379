package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	wipeYes   bool
	wipeNotes bool
)

func init() {
	rootCmd.AddCommand(wipeCmd)

	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "skip the confirmation prompt")
	wipeCmd.Flags().BoolVar(&wipeNotes, "notes", false, "also delete all secure notes")
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every credential record",
	Long:  `Delete every credential record (and with --notes, every secure note). This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes {
			fmt.Printf("This permanently deletes all %d record(s). Type 'yes' to continue: ", store.Len())
			var answer string
			fmt.Scanln(&answer)
			if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := store.Clear(); err != nil {
			return err
		}
		if wipeNotes {
			notes, err := openNotes()
			if err != nil {
				return err
			}
			if err := notes.Clear(); err != nil {
				return err
			}
		}
		return nil
	},
}
