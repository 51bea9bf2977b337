// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich computes the derived fields of a study record. Each record
// is enriched independently: the design classifier, the five thematic
// taggers and the field extractors read only that record's own columns.
package enrich

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/amr-curator/internal/classify"
	"github.com/pdiddy/amr-curator/internal/derive"
	"github.com/pdiddy/amr-curator/pkg/types"
)

// Enricher adds every derived column to a record.
type Enricher struct {
	classifier *classify.Classifier
	vocab      derive.Vocabulary
	outcomes   []derive.OutcomeGroup
}

// New returns an Enricher using c for design and tag classification. A nil
// classifier uses the built-in rules.
func New(c *classify.Classifier) *Enricher {
	if c == nil {
		c = classify.New(nil)
	}
	return &Enricher{
		classifier: c,
		vocab:      derive.DefaultVocabulary(),
		outcomes:   derive.OutcomeGroups(),
	}
}

// Vocabulary returns the vocabulary the enricher uses for aliases and
// no-data sentinels.
func (e *Enricher) Vocabulary() derive.Vocabulary {
	return e.vocab
}

// Enrich returns a copy of rec extended with every derived column. The
// input record is not modified.
func (e *Enricher) Enrich(rec types.Record) types.Record {
	out := rec.Clone()

	out[types.ColDesignMECE] = string(e.classifier.Design(rec.Get(types.ColStudyDesign)))
	for _, d := range types.Dimensions() {
		out[d.Column()] = e.classifier.TagRecord(d, rec).String()
	}

	out[types.ColYearStart], out[types.ColYearEnd] = derive.YearRange(rec.Get(types.ColStudyPeriod))
	out[types.ColPeriodStart], out[types.ColPeriodEnd] = e.vocab.DateRange(rec.Get(types.ColStudyPeriod))

	out[types.ColSampleN] = derive.ParseInt(rec.Get(types.ColSampleSize))
	out[types.ColProceduresN] = derive.ParseInt(rec.Get(types.ColProcedures))
	out[types.ColSSIsN] = derive.ParseInt(rec.Get(types.ColSSIs))
	out[types.ColIsolatesN] = derive.ParseInt(rec.Get(types.ColSSIIsolates))

	out[types.ColSexFemalePct] = derive.ParsePercent(rec.Get(types.ColSexFemale))
	out[types.ColAdherencePct] = derive.ParsePercent(rec.Get(types.ColAdherence))
	out[types.ColIncidencePct] = derive.ParsePercent(rec.Get(types.ColSSIIncidence))

	diag := derive.Diagnosis(rec.Get(types.ColDiagnosisMethod))
	out[types.ColDiagnosisCDC] = string(diag.CDCGuidelines)
	out[types.ColLabCulture] = string(diag.LabCulture)
	out[types.ColFollowup30d] = string(diag.Followup30d)
	out[types.ColDenominator] = string(derive.Denominator(out[types.ColProceduresN], rec.Get(types.ColPopulation)))

	out[types.ColCountryList] = e.vocab.Countries(rec.Get(types.ColCountries)).String()
	out[types.ColFacilityLevel] = string(derive.FacilityLevel(rec.Get(types.ColSetting)))
	out[types.ColSpecialitySet] = derive.Specialities(rec.Get(types.ColSpeciality)).String()
	out[types.ColProcedureGroup] = derive.Procedures(rec.Get(types.ColProceduresText)).String()

	out[types.ColPathogen1Std] = derive.Pathogen(rec.Get(types.ColPathogen1))
	out[types.ColPathogen2Std] = derive.Pathogen(rec.Get(types.ColPathogen2))
	out[types.ColPathogen3Std] = derive.Pathogen(rec.Get(types.ColPathogen3))

	for _, g := range e.outcomes {
		out[g.Flag] = string(e.vocab.Presence(g, rec))
	}
	return out
}

// EnrichAll enriches recs using up to workers goroutines and returns the
// results in input order. Workers below 2 enrich sequentially. Enrichment
// stops early when ctx is cancelled.
func (e *Enricher) EnrichAll(ctx context.Context, recs []types.Record, workers int) ([]types.Record, error) {
	out := make([]types.Record, len(recs))
	if workers < 2 {
		for i, r := range recs {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("enriching record %d: %w", i+1, err)
			}
			out[i] = e.Enrich(r)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range recs {
		i, r := i, r // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("enriching record %d: %w", i+1, err)
			}
			out[i] = e.Enrich(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
