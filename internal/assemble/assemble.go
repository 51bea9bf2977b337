// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble fixes the output schema of the enriched table and
// selects the studies that need manual re-extraction.
package assemble

import (
	"github.com/pdiddy/amr-curator/pkg/types"
)

// Columns returns the enriched-table header: original in input order, then
// each derived column not already present in original.
func Columns(original, derived []string) []string {
	present := make(map[string]bool, len(original))
	out := make([]string, 0, len(original)+len(derived))
	for _, c := range original {
		present[c] = true
		out = append(out, c)
	}
	for _, c := range derived {
		if present[c] {
			continue
		}
		present[c] = true
		out = append(out, c)
	}
	return out
}

// EnrichedColumns is Columns with the standard derived columns.
func EnrichedColumns(original []string) []string {
	return Columns(original, types.DerivedColumns())
}

// NeedsReextraction reports whether any presence flag on rec is no.
func NeedsReextraction(rec types.Record) bool {
	for _, col := range types.PresenceFlagColumns() {
		if types.TriState(rec.Get(col)) == types.No {
			return true
		}
	}
	return false
}

// Shortlist selects the enriched records needing re-extraction, in input
// order, projected onto ShortlistColumns.
func Shortlist(recs []types.Record) []types.Record {
	cols := types.ShortlistColumns()
	var out []types.Record
	for _, r := range recs {
		if !NeedsReextraction(r) {
			continue
		}
		p := make(types.Record, len(cols))
		for _, c := range cols {
			p[c] = r.Get(c)
		}
		out = append(out, p)
	}
	return out
}
