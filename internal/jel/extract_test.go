// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCodes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "labeled list skips over-long token",
			in:   "Classification: L13, D2 and something M99Z",
			want: []string{"L13", "D2"},
		},
		{
			name: "lowercase input is uppercased first",
			in:   "jel codes: l13, d21",
			want: []string{"L13", "D21"},
		},
		{
			name: "duplicates keep first-seen order",
			in:   "D21 L13 D21 L13 E44",
			want: []string{"D21", "L13", "E44"},
		},
		{
			name: "single digit and double digit both match",
			in:   "Primary: L1; secondary: L13.",
			want: []string{"L1", "L13"},
		},
		{
			name: "three digits do not match",
			in:   "catalog item L130 and Q999",
			want: nil,
		},
		{
			name: "letter suffix breaks the word boundary",
			in:   "gene M99Z expression",
			want: nil,
		},
		{
			name: "no codes",
			in:   "an abstract about firms and markets",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCodes(tt.in))
		})
	}
}

func TestExtractCodesPunctuationBoundaries(t *testing.T) {
	// Codes embedded in prose with punctuation on both sides still match.
	got := ExtractCodes("(JEL D43, L13; see also E2.)")
	assert.Equal(t, []string{"D43", "L13", "E2"}, got)
}
