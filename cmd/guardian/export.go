package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/importer"
)

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all credentials as plaintext JSON",
	Long: `Export every credential with its password decrypted, in the same
array format the import command accepts. The output contains plaintext
passwords; handle the file accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := importer.MarshalExport(store.Export())
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Printf("Exported %d record(s) to %s\n", store.Len(), exportOutput)
		return nil
	},
}
