// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/jel-harvest/internal/cache"
	"github.com/pdiddy/jel-harvest/internal/enrich"
	"github.com/pdiddy/jel-harvest/internal/httputil"
	"github.com/pdiddy/jel-harvest/pkg/types"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultMaxRetries    = 3
	defaultRateLimit     = 2.0 // requests per second
	defaultStrategyDelay = 1 * time.Second
	defaultUserAgent     = "jel-harvest/0.1"
	defaultRawDir        = "data/raw/openalex"
	defaultCacheDir      = "data/raw/html"
	defaultOutputDir     = "data/final"
)

// defaultSources is the enrichment priority order used when the config
// does not set one.
var defaultSources = []string{"aea_page", "aea_search", "crossref", "openalex", "ideas"}

// loadConfig unmarshals the viper configuration into a PipelineConfig,
// applies defaults, folds in a standalone journals file when the
// --journals flag is set, and validates. Configuration errors are fatal:
// no stage can do meaningful work without journals and the reference
// table path.
func loadConfig(cmd *cobra.Command) (*types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if path, _ := cmd.Flags().GetString("journals"); path != "" {
		journals, err := loadJournalsFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Journals = journals
	}

	if cfg.RawDir == "" {
		cfg.RawDir = defaultRawDir
	}
	if cfg.Scraping.Timeout == 0 {
		cfg.Scraping.Timeout = defaultTimeout
	}
	if cfg.Scraping.MaxRetries == 0 {
		cfg.Scraping.MaxRetries = defaultMaxRetries
	}
	if cfg.Scraping.RateLimit == 0 {
		cfg.Scraping.RateLimit = defaultRateLimit
	}
	if cfg.Scraping.UserAgent == "" {
		cfg.Scraping.UserAgent = defaultUserAgent
	}
	if len(cfg.Enrichment.Sources) == 0 {
		cfg.Enrichment.Sources = defaultSources
	}
	if cfg.Enrichment.CacheDir == "" {
		cfg.Enrichment.CacheDir = defaultCacheDir
	}
	if cfg.Enrichment.StrategyDelay == 0 {
		cfg.Enrichment.StrategyDelay = defaultStrategyDelay
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"csv", "sqlite"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadJournalsFile reads journal definitions from a standalone YAML file:
// either a bare list or a document with a top-level "journals" key.
func loadJournalsFile(path string) ([]types.Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading journals file: %w", err)
	}

	var wrapped struct {
		Journals []types.Journal `yaml:"journals"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Journals) > 0 {
		return wrapped.Journals, nil
	}

	var journals []types.Journal
	if err := yaml.Unmarshal(data, &journals); err != nil {
		return nil, fmt.Errorf("parsing journals file %s: %w", path, err)
	}
	return journals, nil
}

// newHTTPClient builds the per-run resilient client from the scraping
// configuration. One client is shared by every network-touching stage.
func newHTTPClient(cfg *types.PipelineConfig) *httputil.Client {
	var robots *httputil.RobotsChecker
	if cfg.Scraping.RespectRobotsTxt {
		robots = httputil.NewRobotsChecker()
	}
	return httputil.NewClient(
		cfg.Scraping.Timeout,
		cfg.Scraping.MaxRetries,
		cfg.Scraping.RateLimit,
		robots,
		cfg.Scraping.UserAgent,
	)
}

// newChain builds the enrichment strategy chain from configuration.
func newChain(cfg *types.PipelineConfig, client *httputil.Client) (*enrich.Chain, error) {
	deps := enrich.Deps{
		HTTP:  client,
		Cache: cache.New(cfg.Enrichment.CacheDir),
	}
	return enrich.Build(cfg.Enrichment.Sources, deps, cfg.Enrichment.StrategyDelay)
}
