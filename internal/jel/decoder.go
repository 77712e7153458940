// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jel

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/jel-harvest/pkg/types"
)

// CodeInfo is the reference-table entry for one JEL code.
type CodeInfo struct {
	// Description is the human-readable meaning of the code.
	Description string `json:"description"`

	// Parent is the next code up the hierarchy ("L13" → "L1" → "L"),
	// empty for primary letters.
	Parent string `json:"parent,omitempty"`

	// Level is the hierarchy depth: 0 for a bare letter, 1 for
	// letter+digit, 2 for letter+two digits.
	Level int `json:"level"`

	// PrimaryDescription is the description of the code's primary letter.
	PrimaryDescription string `json:"primary_description,omitempty"`
}

// Expansion holds the hierarchy fields joined onto each dataset row.
type Expansion struct {
	// PrimaryLetters are the unique primary letters, sorted (e.g. C, D, L).
	PrimaryLetters []string

	// PrimaryCategories are the descriptions of PrimaryLetters, same order.
	PrimaryCategories []string

	// FullDescriptions are the descriptions of each known code, in code
	// order; unknown codes are skipped.
	FullDescriptions []string

	// Count is the number of codes on the record.
	Count int

	// Has reports whether the record carries any codes.
	Has bool
}

// Decoder looks up JEL codes in the static reference table. The table is
// loaded read-only and never produced by this pipeline.
type Decoder struct {
	lookup map[string]CodeInfo
}

// NewDecoder loads the reference table from a JSON file mapping code to
// CodeInfo. A missing or unreadable table is a configuration error.
func NewDecoder(path string) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading JEL reference table: %w", err)
	}

	var lookup map[string]CodeInfo
	if err := json.Unmarshal(data, &lookup); err != nil {
		return nil, fmt.Errorf("parsing JEL reference table %s: %w", path, err)
	}
	return &Decoder{lookup: lookup}, nil
}

// NewDecoderFromMap builds a decoder from an in-memory table. Used by
// tests and callers that embed the table.
func NewDecoderFromMap(lookup map[string]CodeInfo) *Decoder {
	return &Decoder{lookup: lookup}
}

// Len returns the number of codes in the table.
func (d *Decoder) Len() int { return len(d.lookup) }

// Decode returns the entry for one code, case-insensitively.
func (d *Decoder) Decode(code string) (CodeInfo, bool) {
	info, ok := d.lookup[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// Expand derives the hierarchy fields for a record's code list.
func (d *Decoder) Expand(codes []string) Expansion {
	exp := Expansion{Count: len(codes), Has: len(codes) > 0}
	if len(codes) == 0 {
		return exp
	}

	var letters []string
	for _, code := range codes {
		if code != "" {
			letters = append(letters, strings.ToUpper(code[:1]))
		}
	}
	exp.PrimaryLetters = types.SortedUnique(letters)

	for _, letter := range exp.PrimaryLetters {
		if info, ok := d.Decode(letter); ok {
			exp.PrimaryCategories = append(exp.PrimaryCategories, info.Description)
		}
	}
	for _, code := range codes {
		if info, ok := d.Decode(code); ok {
			exp.FullDescriptions = append(exp.FullDescriptions, info.Description)
		}
	}
	return exp
}
