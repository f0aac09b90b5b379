package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/checkup"
	"github.com/tandouridev/password-guardian-vault/pkg/strength"
)

func init() {
	rootCmd.AddCommand(checkupCmd)
}

var checkupCmd = &cobra.Command{
	Use:   "checkup",
	Short: "Analyze vault health: weak, reused, and average password strength",
	RunE: func(cmd *cobra.Command, args []string) error {
		records := store.Decrypted()
		report := checkup.Health(records)

		fmt.Printf("Records:    %d\n", report.Total)
		fmt.Printf("Average:    %d/100 (%s)\n", report.Average, strength.ForScore(report.Average).Label)
		fmt.Printf("Weak:       %d\n", report.Weak)
		fmt.Printf("Strong:     %d\n", report.Strong)
		fmt.Printf("Reused:     %d\n", report.Duplicates)

		weak := checkup.Weak(records)
		if len(weak) > 0 {
			fmt.Println("\nWeak passwords (weakest first):")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCORE\tID\tSITE\tUSERNAME")
			for _, entry := range weak {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					entry.Score, entry.Record.ID, entry.Record.Site, entry.Record.Username)
			}
			w.Flush()
		}

		dups := checkup.Duplicates(records)
		if len(dups) > 0 {
			fmt.Println("\nReused passwords:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSITE\tSAME AS")
			for _, dup := range dups {
				fmt.Fprintf(w, "%s\t%s\t%s\n", dup.Record.ID, dup.Record.Site, dup.FirstID)
			}
			w.Flush()
		}

		return nil
	},
}
