// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package derive extracts structured fields from the free-text cells of a
// study record: year and date ranges, counts and percentages, tri-state
// flags, country lists, facility/speciality/procedure groupings and
// standardized pathogen names. Every function is total: text that cannot be
// parsed yields an empty string, "unclear", "unspecified" or "Other", never
// an error.
package derive

import (
	"strings"
	"time"
)

// Vocabulary holds the lookup tables the extractors consult. Build it with
// DefaultVocabulary and treat it as read-only; it is safe to share.
type Vocabulary struct {
	// Months maps lower-case month names and abbreviations to months.
	Months map[string]time.Month

	// CountryAliases maps lower-case country spellings to a canonical name.
	CountryAliases map[string]string

	// NoData lists lower-case cell values that carry no information.
	NoData map[string]bool
}

// DefaultVocabulary returns freshly allocated built-in tables.
func DefaultVocabulary() Vocabulary {
	months := map[string]time.Month{}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
	months["sept"] = time.September

	return Vocabulary{
		Months: months,
		CountryAliases: map[string]string{
			"democratic republic of congo":     "Democratic Republic of the Congo",
			"democratic republic of the congo": "Democratic Republic of the Congo",
			"dr congo":                         "Democratic Republic of the Congo",
			"drc":                              "Democratic Republic of the Congo",
		},
		NoData: map[string]bool{
			"not applicable": true,
			"na":             true,
			"n/a":            true,
			"not available":  true,
			"not reported":   true,
		},
	}
}

// HasValue reports whether a cell is informative: non-empty after trimming
// and not a no-data sentinel.
func (v Vocabulary) HasValue(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return false
	}
	return !v.NoData[strings.ToLower(s)]
}

// AnyValue reports whether any of cells is informative.
func (v Vocabulary) AnyValue(cells ...string) bool {
	for _, c := range cells {
		if v.HasValue(c) {
			return true
		}
	}
	return false
}
