// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/jel-harvest/pkg/types"
)

// FetchResult summarizes a fetch run across journals and years.
type FetchResult struct {
	Written int // journal-year files written
	Skipped int // files that already existed
	Empty   int // journal-years with no works
	Failed  int // journal-years that produced an error
}

// FetchAll walks every configured journal and its year range, fetching one
// raw JSONL file per journal-year into rawDir/<key>/<year>.jsonl. Existing
// files are skipped, so reruns only fill gaps. A failed journal-year is
// reported on w and skipped; the batch continues.
func (c *Client) FetchAll(ctx context.Context, cfg *types.PipelineConfig, w io.Writer) FetchResult {
	var result FetchResult

	for i, journal := range cfg.Journals {
		start, end := cfg.JournalYears(journal)
		fmt.Fprintf(w, "[%d/%d] %s (%s), %d-%d\n", i+1, len(cfg.Journals), journal.Name, journal.Key, start, end)

		journalDir := filepath.Join(cfg.RawDir, journal.Key)
		for year := start; year <= end; year++ {
			path := filepath.Join(journalDir, fmt.Sprintf("%d.jsonl", year))
			if _, err := os.Stat(path); err == nil {
				result.Skipped++
				continue
			}

			works, err := c.FetchJournalYear(ctx, journal, year)
			if err != nil {
				fmt.Fprintf(w, "  %d: %v\n", year, err)
				if ctx.Err() != nil {
					return result
				}
				result.Failed++
				// A partial page walk still yields usable records.
				if len(works) == 0 {
					continue
				}
			}
			if len(works) == 0 {
				fmt.Fprintf(w, "  %d: no works found\n", year)
				result.Empty++
				continue
			}

			if err := writeRawFile(path, works); err != nil {
				fmt.Fprintf(w, "  %d: %v\n", year, err)
				result.Failed++
				continue
			}
			fmt.Fprintf(w, "  %d: %d works\n", year, len(works))
			result.Written++
		}
	}

	fmt.Fprintf(w, "\nFetch summary: %d written, %d skipped, %d empty, %d failed\n",
		result.Written, result.Skipped, result.Empty, result.Failed)
	return result
}

// writeRawFile writes one raw work payload per line. The file is written
// whole via a temp file so an interrupted fetch never leaves a truncated
// raw file behind.
func writeRawFile(path string, works []json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	for _, work := range works {
		if _, err := tmp.Write(append(work, '\n')); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing raw file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
