package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tandouridev/password-guardian-vault/pkg/vault"
)

// Note command flags
var (
	noteContent  string
	noteCategory string
	noteTags     []string
)

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteGetCmd, noteDeleteCmd)

	noteAddCmd.Flags().StringVar(&noteContent, "content", "", "note body (prompted if omitted)")
	noteAddCmd.Flags().StringVarP(&noteCategory, "category", "c", "", "category label (default \"General\")")
	noteAddCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "tag (repeatable)")
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage secure notes",
	Long:  `Manage secure notes. Note bodies are encrypted at rest; titles, categories, and tags stay searchable.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a secure note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes()
		if err != nil {
			return err
		}

		content := noteContent
		if content == "" {
			content, err = readHiddenLine("Content: ")
			if err != nil {
				return err
			}
		}

		id, err := notes.Add(vault.NoteDraft{
			Title:    args[0],
			Content:  content,
			Category: noteCategory,
			Tags:     noteTags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("ID: %s\n", id)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List secure notes, optionally filtered by title, category, or tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes()
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		found := notes.Search(query)
		if len(found) == 0 {
			fmt.Println("No notes found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tTAGS\tUPDATED")
		for _, note := range found {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				note.ID, note.Title, note.Category,
				strings.Join(note.Tags, ","), formatMillis(note.UpdatedAt))
		}
		w.Flush()
		return nil
	},
}

var noteGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a secure note with its content decrypted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes()
		if err != nil {
			return err
		}

		note, ok := notes.Get(args[0])
		if !ok {
			return fmt.Errorf("note not found: %s", args[0])
		}

		fmt.Printf("Title:    %s\n", note.Title)
		fmt.Printf("Category: %s\n", note.Category)
		if len(note.Tags) > 0 {
			fmt.Printf("Tags:     %s\n", strings.Join(note.Tags, ", "))
		}
		fmt.Printf("Updated:  %s\n", formatMillis(note.UpdatedAt))
		fmt.Printf("\n%s\n", note.Content)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a secure note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes()
		if err != nil {
			return err
		}
		return notes.Remove(args[0])
	},
}
