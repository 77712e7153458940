// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/jel-harvest/pkg/types"
)

// enrichedSuffix turns "2019.jsonl" into "2019_enriched.jsonl".
const enrichedSuffix = "_enriched.jsonl"

// EnrichedPath derives the enriched file path for a raw file.
func EnrichedPath(rawPath string) string {
	return strings.TrimSuffix(rawPath, ".jsonl") + enrichedSuffix
}

// EnrichFile enriches the records of one raw JSONL file, appending one
// line per record to enrichedPath. The number of non-blank lines already
// in enrichedPath is the resume cursor: records 0..k-1 are treated as
// done and only the remainder is processed, in input order. Each output
// line is written straight to the file descriptor, so a crash loses at
// most the in-flight record. Re-running on a fully enriched file is a
// no-op. Returns the number of records enriched by this call.
func EnrichFile(ctx context.Context, chain *Chain, rawPath, enrichedPath string, w io.Writer) (int, error) {
	works, err := readRawWorks(rawPath)
	if err != nil {
		return 0, err
	}
	if len(works) == 0 {
		return 0, nil
	}

	done, err := countLines(enrichedPath)
	if err != nil {
		return 0, err
	}
	if done >= len(works) {
		return 0, nil
	}
	if done > 0 {
		fmt.Fprintf(w, "  %s: resuming from record %d/%d\n", filepath.Base(rawPath), done+1, len(works))
	}

	out, err := os.OpenFile(enrichedPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening enriched file: %w", err)
	}
	defer out.Close()

	added := 0
	for i, work := range works[done:] {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		if err := chain.Enrich(ctx, work, w); err != nil {
			return added, err
		}

		line, err := json.Marshal(work)
		if err != nil {
			return added, fmt.Errorf("marshaling record %d: %w", done+i, err)
		}
		// One unbuffered write per record keeps the line count a valid
		// resume cursor across crashes.
		if _, err := out.Write(append(line, '\n')); err != nil {
			return added, fmt.Errorf("appending record %d: %w", done+i, err)
		}
		added++

		fmt.Fprintf(w, "  %d/%d %s [%s]\n", done+i+1, len(works), shortID(work), work.JELSource)
	}
	return added, nil
}

// EnrichTree finds every raw file under rawDir (rawDir/<journal>/<year>.jsonl)
// and enriches each one. Already-complete files are skipped silently; a
// file that fails is reported on w and the walk continues.
func EnrichTree(ctx context.Context, chain *Chain, rawDir string, w io.Writer) error {
	var rawFiles []string
	err := filepath.WalkDir(rawDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".jsonl") || strings.HasSuffix(path, enrichedSuffix) {
			return nil
		}
		rawFiles = append(rawFiles, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", rawDir, err)
	}

	fmt.Fprintf(w, "Found %d raw files to enrich\n", len(rawFiles))
	for _, rawPath := range rawFiles {
		added, err := EnrichFile(ctx, chain, rawPath, EnrichedPath(rawPath), w)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %v\n", rawPath, err)
			continue
		}
		if added > 0 {
			fmt.Fprintf(w, "%s: %d records enriched\n", rawPath, added)
		}
	}
	return nil
}

// readRawWorks parses a raw JSONL file, skipping unreadable lines so one
// corrupt record does not block a whole journal-year.
func readRawWorks(path string) ([]*types.Work, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raw file: %w", err)
	}
	defer f.Close()

	var works []*types.Work
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var work types.Work
		if err := json.Unmarshal([]byte(line), &work); err != nil {
			continue
		}
		works = append(works, &work)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading raw file: %w", err)
	}
	return works, nil
}

// countLines counts non-blank lines; a missing file counts zero.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening enriched file: %w", err)
	}
	defer f.Close()

	count := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			count++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading enriched file: %w", err)
	}
	return count, nil
}

// shortID picks a terse per-record label for progress output.
func shortID(w *types.Work) string {
	if doi := w.DOI(); doi != "" {
		return doi
	}
	if w.ID != "" {
		if i := strings.LastIndex(w.ID, "/"); i >= 0 {
			return w.ID[i+1:]
		}
		return w.ID
	}
	title := w.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}
	return title
}
