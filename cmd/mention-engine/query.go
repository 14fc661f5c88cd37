// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mention-engine/internal/graphquery"
	"github.com/pdiddy/mention-engine/internal/graphstore"
	"github.com/pdiddy/mention-engine/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run read-only analytics over a built graph",
	Long: `Query answers analytics questions over a graph produced by build.
The graph file is read as-is; no query modifies it.`,
}

// --- top-journal subcommand ---

var queryTopJournalCmd = &cobra.Command{
	Use:   "top-journal",
	Short: "Show the journal mentioning the most distinct drugs",
	RunE:  runQueryTopJournal,
}

func runQueryTopJournal(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	journal, drugs, ok := graphquery.JournalWithMostDrugs(g)
	if !ok {
		fmt.Println("No journals in graph.")
		return nil
	}
	fmt.Printf("%s (%d drugs)\n", journal, drugs)
	return nil
}

// --- related subcommand ---

var queryRelatedCmd = &cobra.Command{
	Use:   "related <drug>",
	Short: "List drugs sharing PubMed journals with the given drug",
	Long: `Related lists the drugs mentioned in the same journals as the target
drug, counting only journals where both sides are backed by a source
matching --source-prefix. One drug per line, sorted.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueryRelated,
}

func runQueryRelated(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("source-prefix")
	related := graphquery.RelatedDrugs(g, args[0], prefix)
	if len(related) == 0 {
		fmt.Println("No related drugs found.")
		return nil
	}
	for _, name := range related {
		fmt.Println(name)
	}
	return nil
}

// --- shared helpers ---

// loadGraph reads the graph file named by --graph, or the configured
// output location when the flag is unset.
func loadGraph(cmd *cobra.Command) (*types.MentionGraph, error) {
	path := pipelineConfig(cmd).Output.GraphFile
	if v, _ := cmd.Flags().GetString("graph"); v != "" {
		path = v
	}
	return graphstore.LoadJSON(path)
}

func init() {
	queryTopJournalCmd.Flags().String("graph", "", "graph file to query (default: <output-dir>/drug_mentions_graph.json)")

	queryRelatedCmd.Flags().String("graph", "", "graph file to query (default: <output-dir>/drug_mentions_graph.json)")
	queryRelatedCmd.Flags().String("source-prefix", "", "source type prefix both mentions must carry (default: pubmed)")

	queryCmd.AddCommand(queryTopJournalCmd)
	queryCmd.AddCommand(queryRelatedCmd)
	rootCmd.AddCommand(queryCmd)
}
