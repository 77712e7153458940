// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"sort"
)

// Diagnostics prints summary statistics for an assembled table: totals,
// per-journal counts, DOI and JEL coverage, and the most common primary
// JEL categories.
func Diagnostics(rows []Row, w io.Writer) {
	fmt.Fprintf(w, "\nTotal papers: %d\n", len(rows))
	if len(rows) == 0 {
		return
	}

	minYear, maxYear := 0, 0
	perJournal := map[string]int{}
	withDOI, withJEL := 0, 0
	primaries := map[string]int{}

	for _, row := range rows {
		if row.Year != 0 {
			if minYear == 0 || row.Year < minYear {
				minYear = row.Year
			}
			if row.Year > maxYear {
				maxYear = row.Year
			}
		}
		perJournal[row.JournalKey]++
		if row.DOI != "" {
			withDOI++
		}
		if row.HasJEL {
			withJEL++
		}
		for _, letter := range row.JELPrimaryLetters {
			primaries[letter]++
		}
	}

	if minYear != 0 {
		fmt.Fprintf(w, "Year range: %d to %d\n", minYear, maxYear)
	}

	fmt.Fprintln(w, "\nPapers per journal:")
	keys := make([]string, 0, len(perJournal))
	for k := range perJournal {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d\n", k, perJournal[k])
	}

	total := len(rows)
	fmt.Fprintf(w, "\nDOI coverage: %d / %d (%.1f%%)\n", withDOI, total, 100*float64(withDOI)/float64(total))
	fmt.Fprintf(w, "JEL code coverage: %d / %d (%.1f%%)\n", withJEL, total, 100*float64(withJEL)/float64(total))

	if len(primaries) > 0 {
		type letterCount struct {
			letter string
			count  int
		}
		counts := make([]letterCount, 0, len(primaries))
		for letter, count := range primaries {
			counts = append(counts, letterCount{letter, count})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].letter < counts[j].letter
		})
		if len(counts) > 10 {
			counts = counts[:10]
		}

		fmt.Fprintln(w, "\nTop primary JEL categories:")
		for _, lc := range counts {
			fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", lc.letter, lc.count, 100*float64(lc.count)/float64(total))
		}
	}
}
