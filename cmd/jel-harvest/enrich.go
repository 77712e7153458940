// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jel-harvest/internal/enrich"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich fetched articles with JEL codes",
	Long: `Enrich walks every raw journal-year file and annotates each article
with JEL codes, trying the configured sources in priority order and
recording which one succeeded. Progress is persisted after every record:
an interrupted run resumes at the first unprocessed record, and fully
enriched files are skipped.`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	chain, err := newChain(cfg, newHTTPClient(cfg))
	if err != nil {
		return err
	}

	return enrich.EnrichTree(context.Background(), chain, cfg.RawDir, os.Stdout)
}
