package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mention-engine/internal/graphstore"
)

var mentionsCmd = &cobra.Command{
	Use:   "mentions",
	Short: "List indexed mentions with optional filters",
	Long: `Mentions queries the SQLite mention index built by the index command.
Filters combine with AND semantics; without filters every row is listed
in graph order.`,
	RunE: runMentions,
}

func runMentions(cmd *cobra.Command, args []string) error {
	dbPath := pipelineConfig(cmd).Output.IndexFile
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}

	store, err := graphstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Mentions(context.Background(), filterFromFlags(cmd))
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		formatMentionsTable(os.Stdout, rows)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported format %q: use table or json", format)
	}
}

func filterFromFlags(cmd *cobra.Command) graphstore.Filter {
	drug, _ := cmd.Flags().GetString("drug")
	journal, _ := cmd.Flags().GetString("journal")
	sourceType, _ := cmd.Flags().GetString("source-type")
	datePrefix, _ := cmd.Flags().GetString("date-prefix")
	limit, _ := cmd.Flags().GetInt("limit")

	return graphstore.Filter{
		Drug:       drug,
		Journal:    journal,
		SourceType: sourceType,
		DatePrefix: datePrefix,
		Limit:      limit,
	}
}

func formatMentionsTable(w io.Writer, rows []graphstore.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No mentions found.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-28s  %-12s  %-19s  %s\n",
		"Drug", "Journal", "Date", "Source", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range rows {
		fmt.Fprintf(w, "%-20s  %-28s  %-12s  %-19s  %s\n",
			truncate(r.Drug, 20), truncate(r.Journal, 28), truncate(r.Date, 12),
			truncate(r.SourceType, 19), truncate(r.PublicationTitle, 40))
	}

	fmt.Fprintf(w, "\n%d mention(s)\n", len(rows))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	mentionsCmd.Flags().String("db", "", "index database file (default: <output-dir>/mentions.db)")
	mentionsCmd.Flags().String("drug", "", "filter by drug name")
	mentionsCmd.Flags().String("journal", "", "filter by journal name")
	mentionsCmd.Flags().String("source-type", "", "filter by source type: pubmed_csv, pubmed_json, clinical_trials_csv")
	mentionsCmd.Flags().String("date-prefix", "", "filter by date prefix, e.g. 2020 or 2020-01")
	mentionsCmd.Flags().Int("limit", 0, "maximum rows (0 = all)")
	mentionsCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(mentionsCmd)
}
