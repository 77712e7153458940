// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the jel-harvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jel-harvest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds contact emails loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the jel-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "jel-harvest",
	Short: "Harvest economics journal metadata and JEL classifications",
	Long: `jel-harvest fetches article metadata for economics journals from the
OpenAlex works API, enriches each article with JEL classification codes
through a chain of fallback web sources, and assembles a deduplicated
dataset for downstream analysis.

Each pipeline stage is a subcommand: fetch, enrich, and build. The run
subcommand executes all three in order. Every stage is resumable: fetched
journal-years, cached payloads, and partially enriched files are all
picked up where the previous run stopped.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jel-harvest.yaml or ~/.config/jel-harvest/config.yaml)")
	rootCmd.PersistentFlags().String("journals", "", "standalone journals YAML file (overrides the journals list in the config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jel-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jel-harvest"))
		}
	}

	viper.SetEnvPrefix("JEL_HARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
