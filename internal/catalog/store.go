// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads enriched study tables into a SQLite database for
// filtered queries and YAML/JSON export.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/amr-curator/internal/classify"
	"github.com/pdiddy/amr-curator/internal/records"
	"github.com/pdiddy/amr-curator/pkg/types"
)

const defaultMaxResults = 20

// outcome ties a missing-outcome key to its presence flag and database
// column.
type outcome struct {
	key    string
	flag   string
	column string
}

var outcomes = []outcome{
	{"mortality", types.ColHasMortality, "has_mortality"},
	{"readmission", types.ColHasReadmission, "has_readmission"},
	{"reoperation", types.ColHasReoperation, "has_reoperation"},
	{"los", types.ColHasLOS, "has_los"},
	{"economic", types.ColHasEconomic, "has_economic"},
}

// OutcomeKeys returns the accepted values of QueryOptions.Missing.
func OutcomeKeys() []string {
	keys := make([]string, len(outcomes))
	for i, o := range outcomes {
		keys[i] = o.key
	}
	return keys
}

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	classifier *classify.Classifier
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.DBPath and creates
// the schema if it does not exist. A nil classifier uses the built-in rules;
// it is used to attribute tags to their source columns.
func NewStore(cfg types.CatalogConfig, c *classify.Classifier) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if c == nil {
		c = classify.New(nil)
	}

	s := &Store{db: db, classifier: c, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS studies (
			id TEXT PRIMARY KEY,
			author TEXT NOT NULL,
			year TEXT NOT NULL,
			title TEXT NOT NULL,
			design TEXT NOT NULL,
			design_text TEXT,
			countries TEXT,
			facility_level TEXT,
			period_start TEXT,
			period_end TEXT,
			has_mortality TEXT,
			has_readmission TEXT,
			has_reoperation TEXT,
			has_los TEXT,
			has_economic TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS study_tags (
			study_id TEXT NOT NULL REFERENCES studies(id) ON DELETE CASCADE,
			dimension TEXT NOT NULL,
			label TEXT NOT NULL,
			source_column TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (study_id, dimension, label, source_column)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_studies_design ON studies(design)`,
		`CREATE INDEX IF NOT EXISTS idx_study_tags_label ON study_tags(dimension, label)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// StudyID returns the stable catalog ID for an identity key: the first 12
// hex characters of SHA-256 over the three key fields.
func StudyID(k types.IdentityKey) string {
	h := sha256.New()
	h.Write([]byte(k.Author))
	h.Write([]byte{0})
	h.Write([]byte(k.Year))
	h.Write([]byte{0})
	h.Write([]byte(k.Title))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// LoadSummary holds counts from a catalog load.
type LoadSummary struct {
	Inserted int
	Replaced int
	Failed   int
}

// Total returns the number of records processed.
func (s LoadSummary) Total() int {
	return s.Inserted + s.Replaced + s.Failed
}

// Load ingests an enriched table. A study already in the catalog is
// replaced, tags included. The table must carry the identity columns and
// the MECE design column.
func (s *Store) Load(ctx context.Context, t *types.Table, w io.Writer) (LoadSummary, error) {
	required := append(types.IdentityColumns(), types.ColDesignMECE)
	if err := records.RequireColumns(t, required...); err != nil {
		return LoadSummary{}, fmt.Errorf("table is not enriched: %w", err)
	}

	var summary LoadSummary
	for _, rec := range t.Records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		st := s.StudyFromRecord(rec)
		replaced, err := s.ingestStudy(ctx, st, rec)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", st.ID, err)
			summary.Failed++
			continue
		}
		if replaced {
			summary.Replaced++
		} else {
			summary.Inserted++
		}
	}

	fmt.Fprintf(w, "inserted: %d, replaced: %d, failed: %d\n",
		summary.Inserted, summary.Replaced, summary.Failed)
	return summary, nil
}

// LoadFile reads the enriched table at path and loads it.
func (s *Store) LoadFile(ctx context.Context, path string, w io.Writer) (LoadSummary, error) {
	t, err := records.Load(path)
	if err != nil {
		return LoadSummary{}, err
	}
	return s.Load(ctx, t, w)
}

// StudyFromRecord builds the catalog view of an enriched record. Tags are
// read from the derived tag columns; each is attributed to the source
// column whose own text produced it.
func (s *Store) StudyFromRecord(rec types.Record) types.Study {
	st := types.Study{
		ID:            StudyID(rec.Key()),
		Author:        rec.Get(types.ColAuthor),
		Year:          rec.Get(types.ColYear),
		Title:         rec.Get(types.ColTitle),
		Design:        types.DesignCategory(rec.Get(types.ColDesignMECE)),
		DesignText:    rec.Get(types.ColStudyDesign),
		Countries:     types.SplitTags(rec.Get(types.ColCountryList)),
		FacilityLevel: types.FacilityLevel(rec.Get(types.ColFacilityLevel)),
		PeriodStart:   rec.Get(types.ColPeriodStart),
		PeriodEnd:     rec.Get(types.ColPeriodEnd),
	}
	if !st.Design.Valid() {
		st.Design = s.classifier.Design(st.DesignText)
	}
	for _, o := range outcomes {
		if types.TriState(rec.Get(o.flag)) == types.No {
			st.Missing = append(st.Missing, o.key)
		}
	}

	for _, d := range types.Dimensions() {
		cell, ok := rec[d.Column()]
		labels := types.SplitTags(cell)
		if !ok {
			labels = s.classifier.TagRecord(d, rec)
		}
		byColumn := s.classifier.TagRecordByColumn(d, rec)
		for _, label := range labels {
			attributed := false
			for _, col := range d.SourceColumns() {
				if byColumn[col].Contains(label) {
					st.Tags = append(st.Tags, types.StudyTag{Dimension: d, Label: label, SourceColumn: col})
					attributed = true
				}
			}
			if !attributed {
				st.Tags = append(st.Tags, types.StudyTag{Dimension: d, Label: label})
			}
		}
	}
	return st
}

func (s *Store) ingestStudy(ctx context.Context, st types.Study, rec types.Record) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM studies WHERE id = ?`, st.ID).Scan(&existing)
	replaced := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("looking up study: %w", err)
	}

	if replaced {
		if _, err := tx.ExecContext(ctx, `DELETE FROM study_tags WHERE study_id = ?`, st.ID); err != nil {
			return false, fmt.Errorf("deleting old tags: %w", err)
		}
	}

	countriesJSON, _ := json.Marshal(st.Countries)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO studies (id, author, year, title, design, design_text, countries,
			facility_level, period_start, period_end,
			has_mortality, has_readmission, has_reoperation, has_los, has_economic)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			author=excluded.author, year=excluded.year, title=excluded.title,
			design=excluded.design, design_text=excluded.design_text,
			countries=excluded.countries, facility_level=excluded.facility_level,
			period_start=excluded.period_start, period_end=excluded.period_end,
			has_mortality=excluded.has_mortality, has_readmission=excluded.has_readmission,
			has_reoperation=excluded.has_reoperation, has_los=excluded.has_los,
			has_economic=excluded.has_economic`,
		st.ID, st.Author, st.Year, st.Title, string(st.Design), st.DesignText,
		string(countriesJSON), string(st.FacilityLevel), st.PeriodStart, st.PeriodEnd,
		rec.Get(types.ColHasMortality), rec.Get(types.ColHasReadmission),
		rec.Get(types.ColHasReoperation), rec.Get(types.ColHasLOS), rec.Get(types.ColHasEconomic),
	)
	if err != nil {
		return false, fmt.Errorf("upserting study: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO study_tags (study_id, dimension, label, source_column) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("preparing tag insert: %w", err)
	}
	defer stmt.Close()

	for _, tag := range st.Tags {
		if _, err := stmt.ExecContext(ctx, st.ID, string(tag.Dimension), tag.Label, tag.SourceColumn); err != nil {
			return false, fmt.Errorf("inserting tag %s: %w", tag.Label, err)
		}
	}

	return replaced, tx.Commit()
}
