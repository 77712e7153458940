// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Journal describes one tracked publication venue. Journals are supplied
// whole by configuration and never mutated by the pipeline.
type Journal struct {
	// Key is the short identifier used for directory names (e.g. "aer").
	Key string `json:"key" yaml:"key" mapstructure:"key"`

	// Name is the display name used for the display-name filter fallback
	// (e.g. "American Economic Review").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// SourceID is the OpenAlex source ID (e.g. "S23254222"). When empty
	// or a template placeholder, fetching falls back to an exact
	// display-name filter.
	SourceID string `json:"openalex_source_id,omitempty" yaml:"openalex_source_id,omitempty" mapstructure:"openalex_source_id"`

	// StartYear and EndYear bound the fetched year range (inclusive).
	// Zero values fall back to the pipeline-wide range.
	StartYear int `json:"start_year,omitempty" yaml:"start_year,omitempty" mapstructure:"start_year"`
	EndYear   int `json:"end_year,omitempty" yaml:"end_year,omitempty" mapstructure:"end_year"`
}

// ScrapingConfig holds network politeness and resilience settings shared
// by the fetch and enrichment stages.
type ScrapingConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the total number of attempts per request (>= 1).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RateLimit is the steady request rate in requests per second.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// RespectRobotsTxt enables robots.txt checks before fetching.
	RespectRobotsTxt bool `json:"respect_robots_txt" yaml:"respect_robots_txt" mapstructure:"respect_robots_txt"`

	// UserAgent is sent on every request (e.g. "jel-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EnrichmentConfig holds settings for the JEL enrichment stage.
type EnrichmentConfig struct {
	// Sources is the strategy priority order. Valid entries: "aea_page",
	// "aea_search", "crossref", "openalex", "ideas".
	Sources []string `json:"sources" yaml:"sources" mapstructure:"sources"`

	// CacheDir is the directory for cached HTML/JSON payloads.
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`

	// StrategyDelay is the politeness pause between consecutive strategy
	// attempts for the same work.
	StrategyDelay time.Duration `json:"strategy_delay" yaml:"strategy_delay" mapstructure:"strategy_delay"`
}

// OutputConfig holds settings for dataset assembly.
type OutputConfig struct {
	// Directory receives the final table files.
	Directory string `json:"directory" yaml:"directory" mapstructure:"directory"`

	// Formats lists the outputs to write: "csv", "sqlite".
	Formats []string `json:"formats" yaml:"formats" mapstructure:"formats"`

	// JELCodesPath is the static JEL reference table (JSON).
	JELCodesPath string `json:"jel_codes_path" yaml:"jel_codes_path" mapstructure:"jel_codes_path"`
}

// YearRange is the pipeline-wide default year range, used when a journal
// does not carry its own.
type YearRange struct {
	Start int `json:"start" yaml:"start" mapstructure:"start"`
	End   int `json:"end" yaml:"end" mapstructure:"end"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Journals   []Journal        `json:"journals" yaml:"journals" mapstructure:"journals"`
	Years      YearRange        `json:"years" yaml:"years" mapstructure:"years"`
	RawDir     string           `json:"raw_dir" yaml:"raw_dir" mapstructure:"raw_dir"`
	Scraping   ScrapingConfig   `json:"scraping" yaml:"scraping" mapstructure:"scraping"`
	Enrichment EnrichmentConfig `json:"enrichment" yaml:"enrichment" mapstructure:"enrichment"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}

// Validate reports configuration errors that make any pipeline work
// meaningless. These are fatal: no fetch or enrich stage can proceed
// without journals, and no build stage without the reference table path.
func (c *PipelineConfig) Validate() error {
	if len(c.Journals) == 0 {
		return fmt.Errorf("no journals configured: add a journals list to the config file")
	}
	for i, j := range c.Journals {
		if j.Key == "" {
			return fmt.Errorf("journal %d has no key", i)
		}
		if j.Name == "" {
			return fmt.Errorf("journal %q has no display name", j.Key)
		}
	}
	if c.Output.JELCodesPath == "" {
		return fmt.Errorf("output.jel_codes_path is not set: point it at the JEL reference table")
	}
	return nil
}

// JournalYears returns the inclusive year range for one journal, falling
// back to the pipeline-wide range for missing bounds.
func (c *PipelineConfig) JournalYears(j Journal) (start, end int) {
	start, end = j.StartYear, j.EndYear
	if start == 0 {
		start = c.Years.Start
	}
	if end == 0 {
		end = c.Years.End
	}
	return start, end
}
