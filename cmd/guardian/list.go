package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

var listCategory string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "show only records in this category")
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List credential records, optionally filtered by a search query",
	Long: `List credential records. With a query argument, performs a
case-insensitive substring search across site, username, category, note,
and url. Passwords are never printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		records := store.Search(query)
		if listCategory != "" {
			filtered := records[:0]
			for _, record := range records {
				if strings.EqualFold(record.Category, listCategory) {
					filtered = append(filtered, record)
				}
			}
			records = filtered
		}

		if len(records) == 0 {
			fmt.Println("No records found")
			return nil
		}

		printRecordTable(records)
		fmt.Printf("\n%d record(s)\n", len(records))
		return nil
	},
}

func printRecordTable(records []vault.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSITE\tUSERNAME\tCATEGORY\tUPDATED")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Site, record.Username, record.Category,
			formatMillis(record.UpdatedAt))
	}
	w.Flush()
}
