package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/importer"
)

var importFormat string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "file format: json or csv (default: guessed from the file name)")
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import credentials from a JSON export or browser CSV",
	Long: `Import credentials. JSON files must be an array of
{site, username, password, category?, note?, url?} objects; CSV files are
browser password exports (Chrome, Edge, Firefox). A file with the wrong
top-level shape is rejected wholesale; nothing is partially imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		format := importer.Format(importFormat)
		if importFormat == "" {
			format = importer.DetectFormat(args[0])
		}

		result, err := importer.Parse(format, data)
		if err != nil {
			return err
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		if len(result.Items) == 0 {
			return fmt.Errorf("no usable records in %s", args[0])
		}

		return store.Import(result.Items)
	},
}
