package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mention-engine/internal/graphstore"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the graph as flattened YAML or JSON rows",
	Long: `Export flattens the graph into one row per mention, in stored graph
order, and writes it as YAML or JSON for downstream tooling.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	cfg := pipelineConfig(cmd)
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	switch format {
	case "yaml", "":
		if out == "" {
			out = filepath.Join(cfg.Output.ExportDir, "mentions_export.yaml")
		}
		if err := graphstore.ExportYAML(g, out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = filepath.Join(cfg.Output.ExportDir, "mentions_export.json")
		}
		if err := graphstore.ExportJSON(g, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", out)
	return nil
}

func init() {
	exportCmd.Flags().String("graph", "", "graph file to export (default: <output-dir>/drug_mentions_graph.json)")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: <output-dir>/mentions_export.<format>)")
	rootCmd.AddCommand(exportCmd)
}
