// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jel-harvest/internal/dataset"
	"github.com/pdiddy/jel-harvest/internal/jel"
	"github.com/pdiddy/jel-harvest/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the deduplicated final dataset",
	Long: `Build merges every enriched journal-year file into one table, removes
duplicate articles within each journal-year, joins in the JEL hierarchy
from the static reference table, and writes the configured output formats
(CSV and SQLite).`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("include-l8", false, "count L8 codes as market-side when labeling")
	buildCmd.Flags().Bool("include-m5", false, "count M5 codes as firm-side when labeling")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return buildDataset(cmd, cfg)
}

func buildDataset(cmd *cobra.Command, cfg *types.PipelineConfig) error {
	decoder, err := jel.NewDecoder(cfg.Output.JELCodesPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Loaded %d JEL codes\n", decoder.Len())

	includeL8, _ := cmd.Flags().GetBool("include-l8")
	includeM5, _ := cmd.Flags().GetBool("include-m5")
	opts := jel.LabelOptions{IncludeL8: includeL8, IncludeM5: includeM5}

	rows, err := dataset.Assemble(cfg.RawDir, cfg.Journals, decoder, opts, os.Stdout)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, format := range cfg.Output.Formats {
		switch format {
		case "csv":
			path := filepath.Join(cfg.Output.Directory, "papers.csv")
			if err := dataset.WriteCSV(rows, path); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Saved %s\n", path)
		case "sqlite":
			path := filepath.Join(cfg.Output.Directory, "papers.db")
			if err := dataset.WriteSQLite(rows, path); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Saved %s\n", path)
		default:
			fmt.Fprintf(os.Stderr, "warning: unknown output format %q\n", format)
		}
	}

	dataset.Diagnostics(rows, os.Stdout)
	return nil
}
