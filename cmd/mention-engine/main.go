// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mention-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger reports pipeline progress to stderr. Reconfigured from flags
// before any subcommand runs.
var logger = log.New(os.Stderr)

// rootCmd is the base command for the mention-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "mention-engine",
	Short: "Extract and analyze drug mentions in publication titles",
	Long: `mention-engine scans publication titles from PubMed exports and clinical
trial registries for drug names, builds a drug -> journal -> mentions
graph, and answers analytics queries over it.

The pipeline is file-based: CSV and JSON inputs under the data directory,
an ordered JSON graph plus a derived SQLite index under the output
directory. Each stage is a subcommand; build runs the whole pipeline.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")
		level := log.InfoLevel
		if quiet {
			level = log.WarnLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mention-engine.yaml or ~/.config/mention-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the input files (default: data)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for generated artifacts (default: output)")
	rootCmd.PersistentFlags().Bool("quiet", false, "log warnings only")
}

func initConfig() {
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mention-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mention-engine"))
		}
	}

	viper.SetEnvPrefix("MENTION_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig resolves input and output locations from flags, the
// config file, and environment, in that order of precedence.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	dataDir := stringSetting(cmd, "data-dir", "data_dir", "data")
	outputDir := stringSetting(cmd, "output-dir", "output_dir", "output")

	return types.PipelineConfig{
		Ingest: types.IngestConfig{
			DrugsFile:          pathSetting("drugs_file", dataDir, "drugs.csv"),
			PubMedCSVFile:      pathSetting("pubmed_csv_file", dataDir, "pubmed.csv"),
			PubMedJSONFile:     pathSetting("pubmed_json_file", dataDir, "pubmed.json"),
			ClinicalTrialsFile: pathSetting("clinical_trials_file", dataDir, "clinical_trials.csv"),
		},
		Output: types.OutputConfig{
			GraphFile: pathSetting("graph_file", outputDir, "drug_mentions_graph.json"),
			IndexFile: pathSetting("index_file", outputDir, "mentions.db"),
			ExportDir: outputDir,
		},
		Placeholders: types.Placeholders{
			Journal: viper.GetString("placeholders.journal"),
			Date:    viper.GetString("placeholders.date"),
		},
	}
}

// stringSetting returns the flag value when set, then the viper value,
// then the fallback.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// pathSetting returns the viper override for key, or dir/name.
func pathSetting(key, dir, name string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return filepath.Join(dir, name)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
