// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jel-harvest/internal/jel"
)

var codesCmd = &cobra.Command{
	Use:   "codes CODE...",
	Short: "Decode JEL codes against the reference table",
	Long: `Codes looks each argument up in the static JEL reference table and
prints its description and primary category.`,
	RunE: runCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)
}

func runCodes(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more JEL codes (e.g. C13 L1 D43)")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	decoder, err := jel.NewDecoder(cfg.Output.JELCodesPath)
	if err != nil {
		return err
	}

	for _, code := range args {
		info, ok := decoder.Decode(code)
		if !ok {
			fmt.Fprintf(os.Stdout, "%s: unknown code\n", code)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: %s\n", code, info.Description)
		if info.PrimaryDescription != "" {
			fmt.Fprintf(os.Stdout, "    primary: %s\n", info.PrimaryDescription)
		}
	}
	return nil
}
