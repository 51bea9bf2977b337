// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package derive

import (
	"regexp"
	"strings"

	"github.com/pdiddy/amr-curator/pkg/types"
)

var followup30Pattern = regexp.MustCompile(`30[- ]?day|30\s*days|day 30`)

// Flag returns yes or no for condition when the source was known, and
// unclear otherwise.
func Flag(condition, known bool) types.TriState {
	if !known {
		return types.Unclear
	}
	if condition {
		return types.Yes
	}
	return types.No
}

// DiagnosisFlags holds the tri-state attributes read from the SSI
// diagnosis-method text.
type DiagnosisFlags struct {
	CDCGuidelines types.TriState
	LabCulture    types.TriState
	Followup30d   types.TriState
}

// Diagnosis derives DiagnosisFlags from the method text. A blank method
// makes every flag unclear.
func Diagnosis(method string) DiagnosisFlags {
	m := strings.ToLower(method)
	known := m != ""
	return DiagnosisFlags{
		CDCGuidelines: Flag(strings.Contains(m, "cdc"), known),
		LabCulture:    Flag(strings.Contains(m, "culture"), known),
		Followup30d:   Flag(followup30Pattern.MatchString(m), known),
	}
}

// Denominator decides what the SSI rate was computed over: procedures when a
// procedure count was parsed, the SSI cohort when the population text
// mentions SSI, otherwise unclear.
func Denominator(proceduresParsed, population string) types.DenominatorType {
	if proceduresParsed != "" {
		return types.DenominatorProcedures
	}
	if strings.Contains(strings.ToLower(population), "ssi") {
		return types.DenominatorSSICohort
	}
	return types.DenominatorUnclear
}

// OutcomeGroup names a presence-flag column and the outcome columns that
// feed it.
type OutcomeGroup struct {
	Flag    string
	Sources []string
}

// OutcomeGroups returns the presence-flag definitions in output order.
func OutcomeGroups() []OutcomeGroup {
	return []OutcomeGroup{
		{Flag: types.ColHasMortality, Sources: []string{
			types.ColMortalityAttributable, types.ColMortality30Day, types.ColMortality90Day,
		}},
		{Flag: types.ColHasReadmission, Sources: []string{types.ColReadmission}},
		{Flag: types.ColHasReoperation, Sources: []string{types.ColReoperation}},
		{Flag: types.ColHasLOS, Sources: []string{types.ColTotalLOS, types.ColAdditionalStay}},
		{Flag: types.ColHasEconomic, Sources: []string{types.ColEconDirect, types.ColEconIndirect}},
	}
}

// Presence returns yes when any source column of g is informative on rec,
// else no. Presence flags are never unclear.
func (v Vocabulary) Presence(g OutcomeGroup, rec types.Record) types.TriState {
	for _, col := range g.Sources {
		if v.HasValue(rec.Get(col)) {
			return types.Yes
		}
	}
	return types.No
}
