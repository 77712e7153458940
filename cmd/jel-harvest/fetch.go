// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jel-harvest/internal/openalex"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch raw article listings from OpenAlex",
	Long: `Fetch walks every configured journal and year, pulling the full works
listing for each journal-year from OpenAlex into a raw JSONL file. Years
that already have a raw file are skipped, so reruns only fill gaps. A
journal-year that fails after retries is logged and skipped.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client := &openalex.Client{
		HTTP:  newHTTPClient(cfg),
		Email: secretDefault("openalex-email", ""),
	}

	result := client.FetchAll(context.Background(), cfg, os.Stdout)
	if result.Failed > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d journal-year(s) failed\n", result.Failed)
	}
	return nil
}
