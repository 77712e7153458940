// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the jel-harvest pipeline:
// the Work record carried through raw and enriched files, normalization
// helpers used as deduplication keys, and per-stage configuration.
package types

import (
	"regexp"
	"sort"
	"strings"
)

// Work is one scholarly article as returned by the OpenAlex works API,
// plus the JEL fields appended by the enrichment stage. The same struct is
// serialized to both the raw and the enriched JSONL files; enrichment only
// adds fields, it never rewrites the upstream ones.
type Work struct {
	// ID is the OpenAlex work URL (e.g. "https://openalex.org/W2168...").
	ID string `json:"id"`

	// Title is the article title as returned by the source.
	Title string `json:"title"`

	// RawDOI is the DOI as returned by OpenAlex, usually URL-prefixed.
	// Use DOI() for the normalized form.
	RawDOI string `json:"doi,omitempty"`

	// IDs carries alternate identifiers; IDs.DOI is consulted when the
	// top-level doi field is empty.
	IDs *WorkIDs `json:"ids,omitempty"`

	// PublicationYear is the year of publication, or 0 when unknown.
	PublicationYear int `json:"publication_year,omitempty"`

	// Authorships lists authors in source order.
	Authorships []Authorship `json:"authorships,omitempty"`

	// AbstractInvertedIndex maps each abstract token to the positions
	// where it occurs. Use Abstract() for the reconstructed text.
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index,omitempty"`

	// LandingPageURL is the article landing page, when OpenAlex reports
	// one at the top level.
	LandingPageURL string `json:"landing_page_url,omitempty"`

	// PrimaryLocation carries the hosting source and its landing URL.
	PrimaryLocation *Location `json:"primary_location,omitempty"`

	// Concepts lists OpenAlex concept tags for the work.
	Concepts []Concept `json:"concepts,omitempty"`

	// JELCodes holds the classification codes found by enrichment.
	// Empty together with JELSource == "missing" is a valid terminal state.
	JELCodes []string `json:"jel_codes,omitempty"`

	// JELRaw is a snippet of the text the codes were extracted from.
	JELRaw string `json:"jel_raw,omitempty"`

	// JELSource names the enrichment strategy that produced the codes
	// ("aea_page", "aea_search", "crossref", "openalex", "ideas"), or
	// "missing" when every strategy came up empty.
	JELSource string `json:"jel_source,omitempty"`
}

// WorkIDs holds alternate identifiers for a work.
type WorkIDs struct {
	DOI string `json:"doi,omitempty"`
}

// Authorship is one author entry on a work.
type Authorship struct {
	Author Author `json:"author"`
}

// Author identifies a single author.
type Author struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
}

// Location is a hosting venue for a work.
type Location struct {
	URL    string  `json:"url,omitempty"`
	Source *Source `json:"source,omitempty"`
}

// Source identifies a journal or repository in OpenAlex.
type Source struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Concept is an OpenAlex subject tag.
type Concept struct {
	DisplayName string `json:"display_name"`
}

// DOI returns the work's normalized DOI, preferring the top-level field
// and falling back to ids.doi. Empty when the work has no DOI.
func (w *Work) DOI() string {
	if d := NormalizeDOI(w.RawDOI); d != "" {
		return d
	}
	if w.IDs != nil {
		return NormalizeDOI(w.IDs.DOI)
	}
	return ""
}

// AuthorNames returns author display names in source order, skipping
// entries without a name.
func (w *Work) AuthorNames() []string {
	var names []string
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return names
}

// ConceptNames returns concept display names in source order.
func (w *Work) ConceptNames() []string {
	var names []string
	for _, c := range w.Concepts {
		if c.DisplayName != "" {
			names = append(names, c.DisplayName)
		}
	}
	return names
}

// Landing returns the best landing-page URL for the work: the top-level
// landing page, then the primary location URL, then the OpenAlex ID.
func (w *Work) Landing() string {
	if w.LandingPageURL != "" {
		return w.LandingPageURL
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.URL != "" {
		return w.PrimaryLocation.URL
	}
	return w.ID
}

// Abstract reconstructs the abstract text from the inverted index. Each
// token is placed at every position it lists; non-empty slots are joined
// with single spaces. Returns "" when the index is empty or malformed.
func (w *Work) Abstract() string {
	idx := w.AbstractInvertedIndex
	if len(idx) == 0 {
		return ""
	}

	maxPos := 0
	for _, positions := range idx {
		for _, p := range positions {
			if p < 0 {
				return ""
			}
			if p > maxPos {
				maxPos = p
			}
		}
	}

	slots := make([]string, maxPos+1)
	for token, positions := range idx {
		for _, p := range positions {
			slots[p] = token
		}
	}

	words := slots[:0]
	for _, s := range slots {
		if s != "" {
			words = append(words, s)
		}
	}
	return strings.Join(words, " ")
}

// doiPrefix strips the resolver URL from DOI values like
// "https://doi.org/10.1257/aer.20170001" or "http://dx.doi.org/...".
var doiPrefix = regexp.MustCompile(`(?i)^https?://(dx\.)?doi\.org/`)

// NormalizeDOI converts a DOI to its canonical form: resolver URL and
// "doi:" label stripped, trimmed, lowercased. The result is the sole
// deduplication key for records that carry a DOI, so normalization must be
// idempotent. Returns "" for empty input.
func NormalizeDOI(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = doiPrefix.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "doi:", "")
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTitle returns a case-folded, whitespace-collapsed form of the
// title, used as the dedup key for records without a DOI.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// SortedUnique returns the unique values of in, sorted. Used for primary
// JEL letters where set semantics matter more than source order.
func SortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
