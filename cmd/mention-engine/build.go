package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mention-engine/internal/graphstore"
	"github.com/pdiddy/mention-engine/internal/ingest"
	"github.com/pdiddy/mention-engine/internal/mention"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the pipeline: load inputs, match drugs, write the graph",
	Long: `Build runs the full matching pipeline. It loads the drug vocabulary and
the publication sources, scans every title for whole-word drug mentions,
and writes the drug -> journal -> mentions graph as ordered JSON.

Missing or defective source files degrade to warnings; the graph is
written from whatever loaded. An empty vocabulary stops the run, since
there is nothing to match.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	graphPath := cfg.Output.GraphFile
	if v, _ := cmd.Flags().GetString("graph"); v != "" {
		graphPath = v
	}

	drugs, err := ingest.LoadDrugs(cfg.Ingest.DrugsFile)
	if err != nil {
		return err
	}
	if len(drugs) == 0 {
		logger.Warn("no drugs in vocabulary, nothing to match", "file", cfg.Ingest.DrugsFile)
		return nil
	}
	logger.Info("loaded drug vocabulary", "count", len(drugs))

	pubs, summary := ingest.LoadPublications(ingest.DefaultSources(cfg.Ingest), ingest.Options{
		Placeholders: cfg.Placeholders,
		Warn:         os.Stderr,
	})
	logger.Info("loaded publications", "count", summary.Loaded, "failed_sources", summary.FailedSources)

	g := mention.BuildGraph(drugs, pubs)
	logger.Info("built mention graph", "drugs", g.Len(), "mentions", g.TotalMentions())

	if err := graphstore.SaveJSON(g, graphPath); err != nil {
		return err
	}
	logger.Info("wrote graph", "path", graphPath)
	return nil
}

func init() {
	buildCmd.Flags().String("graph", "", "output graph file (default: <output-dir>/drug_mentions_graph.json)")
	rootCmd.AddCommand(buildCmd)
}
