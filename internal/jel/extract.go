// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jel extracts, decodes, and labels JEL classification codes.
package jel

import (
	"regexp"
	"strings"
)

// codePattern matches a JEL code as a whole token: one uppercase letter
// followed by one or two digits. "M99Z" is not a match — the code must not
// be a sub-token of a longer alphanumeric run.
var codePattern = regexp.MustCompile(`\b[A-Z]\d{1,2}\b`)

// ExtractCodes scans arbitrary text (prose, rendered HTML, or serialized
// JSON) for JEL code tokens and returns the unique matches in first-seen
// order. Matching is case-insensitive; the input is uppercased first.
// Empty input yields nil.
func ExtractCodes(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var codes []string
	for _, m := range codePattern.FindAllString(strings.ToUpper(text), -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		codes = append(codes, m)
	}
	return codes
}
