package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/adcheck/internal/connectors/keywordfile"
)

var (
	keywordsJSON   bool
	keywordsExport string
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keyword table",
	Long: `Fetch the keyword table from the configured source and print each
keyword with its note.

Use --export to save the table as a TOML keyword file, which can then be used
offline with keywords.source = "file".`,
	Args: cobra.NoArgs,
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "output keywords as JSON")
	keywordsCmd.Flags().StringVar(&keywordsExport, "export", "", "write the table to a TOML keyword file")
	rootCmd.AddCommand(keywordsCmd)
}

type keywordRow struct {
	Keyword string `json:"keyword"`
	Note    string `json:"note"`
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	_, review, err := loadReviewService(cmd.Context())
	if err != nil {
		return err
	}
	table := review.Keywords()

	if keywordsExport != "" {
		if err := keywordfile.Write(keywordsExport, table); err != nil {
			return err
		}
		cmd.Printf("Exported %d keywords to %s\n", table.Len(), keywordsExport)
		return nil
	}

	rows := make([]keywordRow, 0, table.Len())
	for _, k := range table.Keywords() {
		note, _ := table.Note(k)
		rows = append(rows, keywordRow{Keyword: k, Note: note})
	}

	if keywordsJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cmd.Printf("Keywords (%d):\n", len(rows))
	for i, row := range rows {
		if row.Note == "" {
			cmd.Printf("  [%d] %s\n", i+1, row.Keyword)
			continue
		}
		cmd.Printf("  [%d] %s - %s\n", i+1, row.Keyword, row.Note)
	}
	return nil
}
