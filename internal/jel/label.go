// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jel

// Label classifies a paper's topical focus from its JEL code prefixes.
type Label string

const (
	LabelMarket  Label = "market"
	LabelFirm    Label = "firm"
	LabelBoth    Label = "both"
	LabelUnclear Label = "unclear"
)

// LabelOptions widens the prefix sets used by Classify.
type LabelOptions struct {
	// IncludeL8 counts L8 (industry studies: services) as market-side.
	IncludeL8 bool

	// IncludeM5 counts M5 (personnel economics) as firm-side.
	IncludeM5 bool
}

// Classify labels a code list as market-side (L1, L4, D4), firm-side
// (D2, L2), both, or unclear. The prefix of a code is its letter plus
// first digit ("L13" → "L1").
func Classify(codes []string, opts LabelOptions) Label {
	if len(codes) == 0 {
		return LabelUnclear
	}

	market := map[string]bool{"L1": true, "L4": true, "D4": true}
	firm := map[string]bool{"D2": true, "L2": true}
	if opts.IncludeL8 {
		market["L8"] = true
	}
	if opts.IncludeM5 {
		firm["M5"] = true
	}

	var foundMarket, foundFirm bool
	for _, code := range codes {
		if len(code) < 2 {
			continue
		}
		prefix := code[:2]
		if market[prefix] {
			foundMarket = true
		}
		if firm[prefix] {
			foundFirm = true
		}
	}

	switch {
	case foundMarket && foundFirm:
		return LabelBoth
	case foundMarket:
		return LabelMarket
	case foundFirm:
		return LabelFirm
	default:
		return LabelUnclear
	}
}
