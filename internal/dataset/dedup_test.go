// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateByDOI(t *testing.T) {
	rows := []Row{
		{JournalKey: "aer", Year: 2020, Title: "First Form", DOI: "10.1/X"},
		{JournalKey: "aer", Year: 2020, Title: "Second Form", DOI: "https://doi.org/10.1/x"},
		{JournalKey: "aer", Year: 2020, Title: "Third Form", DOI: "doi:10.1/X"},
	}

	out := Deduplicate(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "First Form", out[0].Title, "first occurrence wins")
	assert.Equal(t, "10.1/X", out[0].DOI, "the kept row is unmodified")
}

func TestDeduplicateByTitle(t *testing.T) {
	rows := []Row{
		{JournalKey: "aer", Year: 2020, Title: "A Paper"},
		{JournalKey: "aer", Year: 2020, Title: "A Paper "},
		{JournalKey: "aer", Year: 2020, Title: "  a  PAPER"},
		{JournalKey: "aer", Year: 2020, Title: "A Different Paper"},
	}

	out := Deduplicate(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "A Paper", out[0].Title)
	assert.Equal(t, "A Different Paper", out[1].Title)
}

func TestDeduplicateKeySpacesNeverMerge(t *testing.T) {
	// Same title, but one row has a DOI and the other does not. They key
	// into disjoint spaces and both survive.
	rows := []Row{
		{JournalKey: "aer", Year: 2020, Title: "A Paper", DOI: "10.1/x"},
		{JournalKey: "aer", Year: 2020, Title: "A Paper"},
	}

	out := Deduplicate(rows)
	assert.Len(t, out, 2)
}

func TestDeduplicateScopedPerGroup(t *testing.T) {
	rows := []Row{
		{JournalKey: "aer", Year: 2020, Title: "T", DOI: "10.1/x"},
		{JournalKey: "aer", Year: 2021, Title: "T", DOI: "10.1/x"},
		{JournalKey: "qje", Year: 2020, Title: "T", DOI: "10.1/x"},
		{JournalKey: "aer", Year: 2020, Title: "T again", DOI: "10.1/x"},
	}

	out := Deduplicate(rows)
	require.Len(t, out, 3)
	assert.Equal(t, 2021, out[1].Year)
	assert.Equal(t, "qje", out[2].JournalKey)
}

func TestDeduplicatePreservesOrderAndIsIdempotent(t *testing.T) {
	rows := []Row{
		{JournalKey: "aer", Year: 2020, Title: "C", DOI: "10.1/c"},
		{JournalKey: "aer", Year: 2020, Title: "A"},
		{JournalKey: "aer", Year: 2020, Title: "B", DOI: "10.1/b"},
		{JournalKey: "aer", Year: 2020, Title: "A duplicate", DOI: "10.1/c"},
	}

	once := Deduplicate(rows)
	require.Len(t, once, 3)
	assert.Equal(t, "C", once[0].Title)
	assert.Equal(t, "A", once[1].Title)
	assert.Equal(t, "B", once[2].Title)

	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}
