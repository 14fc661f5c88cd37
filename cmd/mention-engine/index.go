package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mention-engine/internal/graphstore"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the SQLite mention index from the graph file",
	Long: `Index loads the JSON graph and replaces the contents of the SQLite
mention index with its mentions. The JSON graph stays canonical; the
index only serves filtered lookups and can be rebuilt at any time.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	dbPath := pipelineConfig(cmd).Output.IndexFile
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}

	store, err := graphstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.ImportGraph(context.Background(), g)
	if err != nil {
		return err
	}
	logger.Info("rebuilt mention index",
		"mentions", summary.Mentions,
		"drugs", summary.Drugs,
		"journals", summary.Journals,
		"db", dbPath)
	return nil
}

func init() {
	indexCmd.Flags().String("graph", "", "graph file to index (default: <output-dir>/drug_mentions_graph.json)")
	indexCmd.Flags().String("db", "", "index database file (default: <output-dir>/mentions.db)")
	rootCmd.AddCommand(indexCmd)
}
