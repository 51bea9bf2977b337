// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curate runs the curation pipeline: load the raw extraction table,
// drop duplicate studies, enrich every study, then write the enriched table
// and the re-extraction shortlist.
package curate

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/amr-curator/internal/assemble"
	"github.com/pdiddy/amr-curator/internal/classify"
	"github.com/pdiddy/amr-curator/internal/enrich"
	"github.com/pdiddy/amr-curator/internal/records"
	"github.com/pdiddy/amr-curator/internal/rules"
	"github.com/pdiddy/amr-curator/pkg/types"
)

// Summary counts what a run did.
type Summary struct {
	Read        int `json:"read" yaml:"read"`
	Duplicates  int `json:"duplicates" yaml:"duplicates"`
	Written     int `json:"written" yaml:"written"`
	Shortlisted int `json:"shortlisted" yaml:"shortlisted"`
}

// Total returns the number of input records.
func (s Summary) Total() int {
	return s.Read
}

// Run executes the pipeline described by cfg. Progress lines go to w; the
// logger receives structured events. The first failure aborts the run and
// no later output is written.
func Run(ctx context.Context, cfg types.CurateConfig, w io.Writer, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var sum Summary

	set := rules.Default()
	if cfg.RulesFile != "" {
		s, err := rules.Load(cfg.RulesFile)
		if err != nil {
			return sum, err
		}
		set = s
		logger.Info("loaded rules", zap.String("path", cfg.RulesFile))
	}

	tbl, err := records.Load(cfg.Paths.Input)
	if err != nil {
		return sum, err
	}
	if err := records.RequireColumns(tbl, types.IdentityColumns()...); err != nil {
		return sum, fmt.Errorf("%s: %w", cfg.Paths.Input, err)
	}
	if len(tbl.Records) == 0 {
		return sum, fmt.Errorf("%s: %w", cfg.Paths.Input, records.ErrNoRecords)
	}
	sum.Read = len(tbl.Records)
	fmt.Fprintf(w, "Loaded %d rows from %s\n", sum.Read, cfg.Paths.Input)
	logger.Debug("loaded table", zap.String("path", cfg.Paths.Input), zap.Int("records", sum.Read), zap.Int("columns", len(tbl.Header)))

	unique, removed := records.Deduplicate(tbl.Records)
	sum.Duplicates = removed
	fmt.Fprintf(w, "Removed %d duplicate rows (%d remaining)\n", removed, len(unique))
	logger.Info("deduplicated", zap.Int("records", len(unique)), zap.Int("duplicates", removed))

	e := enrich.New(classify.New(set))
	enriched, err := e.EnrichAll(ctx, unique, cfg.Workers)
	if err != nil {
		return sum, err
	}

	header := assemble.EnrichedColumns(tbl.Header)
	if err := records.WriteFile(cfg.Paths.Enriched, header, enriched); err != nil {
		return sum, err
	}
	sum.Written = len(enriched)
	fmt.Fprintf(w, "Wrote enriched dataset: %s\n", cfg.Paths.Enriched)
	logger.Info("wrote enriched table", zap.String("path", cfg.Paths.Enriched), zap.Int("records", sum.Written))

	if cfg.Paths.Cleaned != "" {
		if err := records.WriteFile(cfg.Paths.Cleaned, header, enriched); err != nil {
			return sum, err
		}
		fmt.Fprintf(w, "Wrote cleaned dataset: %s\n", cfg.Paths.Cleaned)
		logger.Debug("wrote cleaned table", zap.String("path", cfg.Paths.Cleaned))
	}

	shortlist := assemble.Shortlist(enriched)
	sum.Shortlisted = len(shortlist)
	if len(shortlist) > 0 {
		if err := records.WriteFile(cfg.Paths.Shortlist, types.ShortlistColumns(), shortlist); err != nil {
			return sum, err
		}
		fmt.Fprintf(w, "Wrote re-extraction targets (%d rows): %s\n", len(shortlist), cfg.Paths.Shortlist)
	} else {
		fmt.Fprintln(w, "No re-extraction targets")
	}
	logger.Info("curation complete",
		zap.Int("records", sum.Written),
		zap.Int("duplicates", sum.Duplicates),
		zap.Int("shortlisted", sum.Shortlisted))

	return sum, nil
}
