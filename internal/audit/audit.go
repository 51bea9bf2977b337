// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit reports how much of the enriched table could be derived
// from existing columns and which outcome fields need re-extraction from the
// source papers. It reads only; nothing is written back.
package audit

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/amr-curator/internal/derive"
	"github.com/pdiddy/amr-curator/internal/records"
	"github.com/pdiddy/amr-curator/pkg/types"
)

// Status describes an audited field.
type Status string

const (
	StatusDerivable      Status = "derivable"
	StatusMissingSources Status = "missing_source_fields"
	StatusReextract      Status = "needs_re-extraction"
)

// maxCandidates bounds the candidate columns printed per field.
const maxCandidates = 5

// DerivableFields maps each derived field to the source columns it is
// computed from.
func DerivableFields() map[string][]string {
	return map[string][]string{
		types.ColYearStart:      {types.ColStudyPeriod},
		types.ColYearEnd:        {types.ColStudyPeriod},
		types.ColPeriodStart:    {types.ColStudyPeriod},
		types.ColPeriodEnd:      {types.ColStudyPeriod},
		types.ColSampleN:        {types.ColSampleSize},
		types.ColProceduresN:    {types.ColProcedures},
		types.ColSSIsN:          {types.ColSSIs},
		types.ColIsolatesN:      {types.ColSSIIsolates},
		types.ColSexFemalePct:   {types.ColSexFemale},
		types.ColAdherencePct:   {types.ColAdherence},
		types.ColIncidencePct:   {types.ColSSIIncidence},
		types.ColDiagnosisCDC:   {types.ColDiagnosisMethod},
		types.ColLabCulture:     {types.ColDiagnosisMethod},
		types.ColFollowup30d:    {types.ColDiagnosisMethod},
		types.ColCountryList:    {types.ColCountries},
		types.ColFacilityLevel:  {types.ColSetting},
		types.ColSpecialitySet:  {types.ColSpeciality},
		types.ColProcedureGroup: {types.ColProceduresText},
		types.ColPathogen1Std:   {types.ColPathogen1},
		types.ColPathogen2Std:   {types.ColPathogen2},
		types.ColPathogen3Std:   {types.ColPathogen3},
	}
}

// NotDerivableFields lists numeric outcome fields that cannot be computed
// from the free text already extracted.
func NotDerivableFields() []string {
	return []string{
		"econ_direct_numeric", "econ_indirect_numeric",
		"mortality_attr_ssi_pct", "mortality_30d_pct", "mortality_90d_pct",
		"readmission_rate_pct", "reoperation_rate_pct", "additional_los_days",
	}
}

// outcomeKeywords loosely matches column names that may hold outcome data.
// The reoperation alternative also accepts the template's "Re-opertation".
var outcomeKeywords = regexp.MustCompile(`(?i)mortality|readmission|re-?oper(?:a|ta)tion|length of stay|economic|cost`)

// Coverage is the audit line for one derivable field.
type Coverage struct {
	Field    string  `json:"field" yaml:"field"`
	Status   Status  `json:"status" yaml:"status"`
	Coverage float64 `json:"coverage" yaml:"coverage"`
}

// Candidates is the audit line for one not-derivable field.
type Candidates struct {
	Field   string   `json:"field" yaml:"field"`
	Status  Status   `json:"status" yaml:"status"`
	Columns []string `json:"columns" yaml:"columns"`
}

// Report is the result of an audit. Both sections are sorted by field name.
type Report struct {
	Records      int          `json:"records" yaml:"records"`
	Derivable    []Coverage   `json:"derivable" yaml:"derivable"`
	NotDerivable []Candidates `json:"not_derivable" yaml:"not_derivable"`
}

// Auditor computes coverage using the shared has-value predicate.
type Auditor struct {
	vocab derive.Vocabulary
}

// New returns an Auditor using the default vocabulary.
func New() *Auditor {
	return &Auditor{vocab: derive.DefaultVocabulary()}
}

// Audit inspects t.
func (a *Auditor) Audit(t *types.Table) Report {
	rep := Report{Records: len(t.Records)}

	for field, srcs := range DerivableFields() {
		c := Coverage{Field: field, Status: StatusDerivable}
		if !hasAll(t, srcs) {
			c.Status = StatusMissingSources
		} else if len(t.Records) > 0 {
			n := 0
			for _, r := range t.Records {
				if a.anySource(r, srcs) {
					n++
				}
			}
			c.Coverage = float64(n) / float64(len(t.Records))
		}
		rep.Derivable = append(rep.Derivable, c)
	}
	sort.Slice(rep.Derivable, func(i, j int) bool {
		return rep.Derivable[i].Field < rep.Derivable[j].Field
	})

	var cands []string
	for _, col := range t.Header {
		if outcomeKeywords.MatchString(col) {
			cands = append(cands, col)
		}
	}
	for _, field := range NotDerivableFields() {
		rep.NotDerivable = append(rep.NotDerivable, Candidates{
			Field:   field,
			Status:  StatusReextract,
			Columns: cands,
		})
	}
	sort.Slice(rep.NotDerivable, func(i, j int) bool {
		return rep.NotDerivable[i].Field < rep.NotDerivable[j].Field
	})

	return rep
}

func (a *Auditor) anySource(r types.Record, srcs []string) bool {
	for _, s := range srcs {
		if a.vocab.HasValue(r.Get(s)) {
			return true
		}
	}
	return false
}

func hasAll(t *types.Table, cols []string) bool {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return false
		}
	}
	return true
}

// Print writes the two-section text report.
func (r Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Derivable fields coverage ===")
	for _, c := range r.Derivable {
		fmt.Fprintf(w, "%s: %s | coverage=%.0f%%\n", c.Field, c.Status, c.Coverage*100)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Likely not-derivable fields ===")
	for _, c := range r.NotDerivable {
		cols := c.Columns
		if len(cols) > maxCandidates {
			cols = cols[:maxCandidates]
		}
		fmt.Fprintf(w, "%s: %s | possible_existing_cols: %s\n", c.Field, c.Status, strings.Join(cols, ", "))
	}
}

// Run loads the table at path, audits it and prints the report to w.
func Run(path string, w io.Writer) (Report, error) {
	t, err := records.Load(path)
	if err != nil {
		return Report{}, err
	}
	rep := New().Audit(t)
	rep.Print(w)
	return rep, nil
}
