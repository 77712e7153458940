// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// listSep joins multi-valued columns (authors, codes, concepts) in the
// delimited output.
const listSep = "|"

var csvHeader = []string{
	"year", "journal_key", "journal", "title", "authors", "doi", "url",
	"openalex_id", "abstract", "concepts", "jel_codes", "jel_raw",
	"jel_source", "jel_primary_letters", "jel_primary_categories",
	"jel_full_descriptions", "jel_count", "has_jel", "label",
}

// WriteCSV writes the final table as a delimited text file.
func WriteCSV(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		year := ""
		if row.Year != 0 {
			year = strconv.Itoa(row.Year)
		}
		record := []string{
			year,
			row.JournalKey,
			row.Journal,
			row.Title,
			strings.Join(row.Authors, listSep),
			row.DOI,
			row.URL,
			row.OpenAlexID,
			row.Abstract,
			strings.Join(row.Concepts, listSep),
			strings.Join(row.JELCodes, listSep),
			row.JELRaw,
			row.JELSource,
			strings.Join(row.JELPrimaryLetters, listSep),
			strings.Join(row.JELPrimaryCategories, listSep),
			strings.Join(row.JELFullDescriptions, listSep),
			strconv.Itoa(row.JELCount),
			strconv.FormatBool(row.HasJEL),
			row.Label,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
