// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jel-harvest/internal/enrich"
	"github.com/pdiddy/jel-harvest/internal/openalex"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: fetch, enrich, build",
	Long: `Run executes the three pipeline stages in order. Every stage is
resumable, so interrupting a run and starting again continues from the
on-disk state rather than starting over.`,
	RunE: runFull,
}

func init() {
	runCmd.Flags().Bool("include-l8", false, "count L8 codes as market-side when labeling")
	runCmd.Flags().Bool("include-m5", false, "count M5 codes as firm-side when labeling")

	rootCmd.AddCommand(runCmd)
}

func runFull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := newHTTPClient(cfg)

	fmt.Fprintln(os.Stdout, "== Stage 1: fetch ==")
	oa := &openalex.Client{HTTP: client, Email: secretDefault("openalex-email", "")}
	result := oa.FetchAll(ctx, cfg, os.Stdout)
	if result.Failed > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d journal-year(s) failed\n", result.Failed)
	}

	fmt.Fprintln(os.Stdout, "\n== Stage 2: enrich ==")
	chain, err := newChain(cfg, client)
	if err != nil {
		return err
	}
	if err := enrich.EnrichTree(ctx, chain, cfg.RawDir, os.Stdout); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "\n== Stage 3: build ==")
	return buildDataset(cmd, cfg)
}
