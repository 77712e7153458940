// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare DOI", "10.1257/aer.20170001", "10.1257/aer.20170001"},
		{"https prefix", "https://doi.org/10.1257/aer.20170001", "10.1257/aer.20170001"},
		{"http dx prefix", "http://dx.doi.org/10.1257/aer.20170001", "10.1257/aer.20170001"},
		{"doi label", "doi:10.1257/AER.20170001", "10.1257/aer.20170001"},
		{"mixed case", "10.1257/AER.20170001", "10.1257/aer.20170001"},
		{"surrounding whitespace", "  10.1/X \n", "10.1/x"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDOI(tt.in))
		})
	}
}

func TestNormalizeDOIIdempotent(t *testing.T) {
	inputs := []string{
		"https://doi.org/10.1257/AER.20170001",
		"doi:10.1/X",
		"10.2307/1912017",
	}
	for _, in := range inputs {
		once := NormalizeDOI(in)
		assert.Equal(t, once, NormalizeDOI(once))
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "a paper", NormalizeTitle("A Paper "))
	assert.Equal(t, "a paper", NormalizeTitle("  a\tPAPER"))
	assert.Equal(t, "", NormalizeTitle("   "))
}

func TestWorkDOIFallsBackToIDs(t *testing.T) {
	w := Work{IDs: &WorkIDs{DOI: "https://doi.org/10.1257/JEL.2020"}}
	assert.Equal(t, "10.1257/jel.2020", w.DOI())

	w.RawDOI = "10.1/top"
	assert.Equal(t, "10.1/top", w.DOI(), "top-level doi wins over ids.doi")

	assert.Equal(t, "", (&Work{}).DOI())
}

func TestAbstractReconstruction(t *testing.T) {
	w := Work{AbstractInvertedIndex: map[string][]int{
		"competition": {2},
		"Market":      {0},
		"shapes":      {1},
		"and":         {3},
		"entry":       {4},
	}}
	assert.Equal(t, "Market shapes competition and entry", w.Abstract())
}

func TestAbstractRoundTrip(t *testing.T) {
	// Splitting the reconstructed text on whitespace recovers the original
	// token-to-position mapping when positions cover 0..N-1 exactly once.
	original := "price dispersion under search frictions"
	index := map[string][]int{}
	for i, tok := range strings.Fields(original) {
		index[tok] = append(index[tok], i)
	}

	w := Work{AbstractInvertedIndex: index}
	assert.Equal(t, original, w.Abstract())
}

func TestAbstractEdgeCases(t *testing.T) {
	assert.Equal(t, "", (&Work{}).Abstract())

	// Repeated token at several positions.
	w := Work{AbstractInvertedIndex: map[string][]int{
		"the": {0, 2},
		"and": {1},
	}}
	assert.Equal(t, "the and the", w.Abstract())

	// Negative position is malformed, not fatal.
	bad := Work{AbstractInvertedIndex: map[string][]int{"x": {-1}}}
	assert.Equal(t, "", bad.Abstract())
}

func TestLandingPreference(t *testing.T) {
	w := Work{
		ID:             "https://openalex.org/W1",
		LandingPageURL: "https://www.aeaweb.org/articles?id=10.1257/x",
		PrimaryLocation: &Location{
			URL: "https://example.org/other",
		},
	}
	assert.Equal(t, "https://www.aeaweb.org/articles?id=10.1257/x", w.Landing())

	w.LandingPageURL = ""
	assert.Equal(t, "https://example.org/other", w.Landing())

	w.PrimaryLocation = nil
	assert.Equal(t, "https://openalex.org/W1", w.Landing())
}

func TestAuthorAndConceptNames(t *testing.T) {
	w := Work{
		Authorships: []Authorship{
			{Author: Author{DisplayName: "Jean Tirole"}},
			{Author: Author{}},
			{Author: Author{DisplayName: "Esther Duflo"}},
		},
		Concepts: []Concept{{DisplayName: "Economics"}, {DisplayName: ""}},
	}
	assert.Equal(t, []string{"Jean Tirole", "Esther Duflo"}, w.AuthorNames())
	assert.Equal(t, []string{"Economics"}, w.ConceptNames())
}

func TestPipelineConfigValidate(t *testing.T) {
	cfg := PipelineConfig{}
	assert.ErrorContains(t, cfg.Validate(), "no journals")

	cfg.Journals = []Journal{{Key: "aer", Name: "American Economic Review"}}
	assert.ErrorContains(t, cfg.Validate(), "jel_codes_path")

	cfg.Output.JELCodesPath = "data/jel_codes.json"
	assert.NoError(t, cfg.Validate())

	cfg.Journals = append(cfg.Journals, Journal{Name: "No Key"})
	assert.ErrorContains(t, cfg.Validate(), "has no key")
}

func TestJournalYears(t *testing.T) {
	cfg := PipelineConfig{Years: YearRange{Start: 2010, End: 2020}}

	start, end := cfg.JournalYears(Journal{Key: "aer", Name: "AER"})
	assert.Equal(t, 2010, start)
	assert.Equal(t, 2020, end)

	start, end = cfg.JournalYears(Journal{Key: "qje", Name: "QJE", StartYear: 2015, EndYear: 2016})
	assert.Equal(t, 2015, start)
	assert.Equal(t, 2016, end)
}
