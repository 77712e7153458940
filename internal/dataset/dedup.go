// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"github.com/pdiddy/jel-harvest/pkg/types"
)

type groupKey struct {
	journalKey string
	year       int
}

// Deduplicate collapses duplicate records within each (journal key, year)
// group, never across groups. Records with a non-empty normalized DOI are
// keyed by DOI; records without one are keyed by normalized title. DOI
// presence hard-partitions the two key spaces, so a record with a DOI
// never merges with a DOI-less record even when titles match. The first
// occurrence in input order wins and output preserves that order, which
// makes the operation deterministic and idempotent.
func Deduplicate(rows []Row) []Row {
	type seenSet struct {
		byDOI   map[string]bool
		byTitle map[string]bool
	}
	groups := make(map[groupKey]*seenSet)

	var out []Row
	for _, row := range rows {
		gk := groupKey{journalKey: row.JournalKey, year: row.Year}
		seen := groups[gk]
		if seen == nil {
			seen = &seenSet{byDOI: map[string]bool{}, byTitle: map[string]bool{}}
			groups[gk] = seen
		}

		if doi := types.NormalizeDOI(row.DOI); doi != "" {
			if seen.byDOI[doi] {
				continue
			}
			seen.byDOI[doi] = true
		} else {
			title := types.NormalizeTitle(row.Title)
			if seen.byTitle[title] {
				continue
			}
			seen.byTitle[title] = true
		}
		out = append(out, row)
	}
	return out
}
