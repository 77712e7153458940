// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset merges enriched per-journal-year files into one
// deduplicated table and writes the output formats.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/jel-harvest/internal/jel"
	"github.com/pdiddy/jel-harvest/pkg/types"
)

// Row is one line of the final table.
type Row struct {
	Year       int      `json:"year"`
	JournalKey string   `json:"journal_key"`
	Journal    string   `json:"journal"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	DOI        string   `json:"doi"`
	URL        string   `json:"url"`
	OpenAlexID string   `json:"openalex_id"`
	Abstract   string   `json:"abstract"`
	Concepts   []string `json:"concepts"`

	JELCodes  []string `json:"jel_codes"`
	JELRaw    string   `json:"jel_raw"`
	JELSource string   `json:"jel_source"`

	// Hierarchy expansion joined in from the static reference table.
	JELPrimaryLetters    []string `json:"jel_primary_letters"`
	JELPrimaryCategories []string `json:"jel_primary_categories"`
	JELFullDescriptions  []string `json:"jel_full_descriptions"`
	JELCount             int      `json:"jel_count"`
	HasJEL               bool     `json:"has_jel"`

	// Label is the market/firm topical label derived from code prefixes.
	Label string `json:"label"`
}

// Assemble reads every enriched file under rawDir, flattens the works of
// known journals into rows, deduplicates them, and joins the JEL
// hierarchy expansion and topical label. Files for journal keys absent
// from the configuration are skipped, as are unreadable lines and records
// without a title.
func Assemble(rawDir string, journals []types.Journal, decoder *jel.Decoder, opts jel.LabelOptions, w io.Writer) ([]Row, error) {
	lookup := make(map[string]string, len(journals))
	for _, j := range journals {
		lookup[j.Key] = j.Name
	}

	var files []string
	err := filepath.WalkDir(rawDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, "_enriched.jsonl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rawDir, err)
	}
	fmt.Fprintf(w, "Found %d enriched files\n", len(files))

	var rows []Row
	for _, path := range files {
		key := filepath.Base(filepath.Dir(path))
		name, ok := lookup[key]
		if !ok {
			continue
		}
		fileRows, err := readEnrichedFile(path, key, name)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			continue
		}
		rows = append(rows, fileRows...)
	}
	fmt.Fprintf(w, "Collected %d records\n", len(rows))

	before := len(rows)
	rows = Deduplicate(rows)
	if removed := before - len(rows); removed > 0 {
		fmt.Fprintf(w, "Deduplicated: %d -> %d records\n", before, len(rows))
	}

	for i := range rows {
		exp := decoder.Expand(rows[i].JELCodes)
		rows[i].JELPrimaryLetters = exp.PrimaryLetters
		rows[i].JELPrimaryCategories = exp.PrimaryCategories
		rows[i].JELFullDescriptions = exp.FullDescriptions
		rows[i].JELCount = exp.Count
		rows[i].HasJEL = exp.Has
		rows[i].Label = string(jel.Classify(rows[i].JELCodes, opts))
	}
	return rows, nil
}

func readEnrichedFile(path, key, name string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening enriched file: %w", err)
	}
	defer f.Close()

	var rows []Row
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
		if row, ok := workToRow(&work, key, name); ok {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading enriched file: %w", err)
	}
	return rows, nil
}

// workToRow flattens one work. Records without a title carry too little
// to be useful rows and are dropped.
func workToRow(work *types.Work, key, name string) (Row, bool) {
	if work.Title == "" {
		return Row{}, false
	}

	source := work.JELSource
	if source == "" {
		source = "missing"
	}

	return Row{
		Year:       work.PublicationYear,
		JournalKey: key,
		Journal:    name,
		Title:      work.Title,
		Authors:    work.AuthorNames(),
		DOI:        work.DOI(),
		URL:        work.Landing(),
		OpenAlexID: work.ID,
		Abstract:   work.Abstract(),
		Concepts:   work.ConceptNames(),
		JELCodes:   work.JELCodes,
		JELRaw:     work.JELRaw,
		JELSource:  source,
	}, true
}
