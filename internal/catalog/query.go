// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/amr-curator/pkg/types"
)

// QueryOptions holds catalog filters. Filters combine with AND.
type QueryOptions struct {
	// Design filters by MECE design category.
	Design types.DesignCategory

	// Dimension and Tag filter by thematic label. Dimension alone selects
	// studies with any label in that dimension.
	Dimension types.Dimension
	Tag       string

	// Country matches a substring of the country list, ignoring ASCII case.
	Country string

	// Missing selects studies lacking data for an outcome group; see
	// OutcomeKeys.
	Missing string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Design == "" && q.Dimension == "" && q.Tag == "" && q.Country == "" && q.Missing == ""
}

func (q QueryOptions) validate() error {
	if q.Design != "" && !q.Design.Valid() {
		return fmt.Errorf("unknown design category %q", q.Design)
	}
	if q.Dimension != "" && !q.Dimension.Valid() {
		return fmt.Errorf("unknown tag dimension %q", q.Dimension)
	}
	if q.Missing != "" {
		if _, ok := outcomeColumn(q.Missing); !ok {
			return fmt.Errorf("unknown outcome %q: use one of %s", q.Missing, strings.Join(OutcomeKeys(), ", "))
		}
	}
	return nil
}

func outcomeColumn(key string) (string, bool) {
	for _, o := range outcomes {
		if o.key == key {
			return o.column, true
		}
	}
	return "", false
}

// Query returns matching studies ordered by year, author and title, with
// their tags.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Study, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT s.id, s.author, s.year, s.title, s.design, s.design_text, s.countries,
			s.facility_level, s.period_start, s.period_end,
			s.has_mortality, s.has_readmission, s.has_reoperation, s.has_los, s.has_economic
		FROM studies s
		WHERE 1=1`)

	if opts.Design != "" {
		qb.WriteString(` AND s.design = ?`)
		args = append(args, string(opts.Design))
	}
	if opts.Country != "" {
		qb.WriteString(` AND s.countries LIKE ?`)
		args = append(args, "%"+opts.Country+"%")
	}
	if opts.Missing != "" {
		col, _ := outcomeColumn(opts.Missing)
		qb.WriteString(` AND s.` + col + ` = ?`)
		args = append(args, string(types.No))
	}
	if opts.Dimension != "" || opts.Tag != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM study_tags t WHERE t.study_id = s.id`)
		if opts.Dimension != "" {
			qb.WriteString(` AND t.dimension = ?`)
			args = append(args, string(opts.Dimension))
		}
		if opts.Tag != "" {
			qb.WriteString(` AND t.label = ?`)
			args = append(args, opts.Tag)
		}
		qb.WriteString(`)`)
	}

	qb.WriteString(` ORDER BY s.year, s.author, s.title LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var studies []types.Study
	for rows.Next() {
		var (
			st            types.Study
			design        string
			designText    sql.NullString
			countriesJSON sql.NullString
			facility      sql.NullString
			start, end    sql.NullString
			flags         [5]sql.NullString
		)
		if err := rows.Scan(
			&st.ID, &st.Author, &st.Year, &st.Title, &design, &designText, &countriesJSON,
			&facility, &start, &end,
			&flags[0], &flags[1], &flags[2], &flags[3], &flags[4],
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		st.Design = types.DesignCategory(design)
		st.DesignText = designText.String
		if countriesJSON.Valid {
			json.Unmarshal([]byte(countriesJSON.String), &st.Countries)
		}
		st.FacilityLevel = types.FacilityLevel(facility.String)
		st.PeriodStart = start.String
		st.PeriodEnd = end.String
		for i, o := range outcomes {
			if types.TriState(flags[i].String) == types.No {
				st.Missing = append(st.Missing, o.key)
			}
		}
		studies = append(studies, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range studies {
		tags, err := s.studyTags(ctx, studies[i].ID)
		if err != nil {
			return nil, err
		}
		studies[i].Tags = tags
	}
	return studies, nil
}

func (s *Store) studyTags(ctx context.Context, id string) ([]types.StudyTag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dimension, label, source_column FROM study_tags
		 WHERE study_id = ? ORDER BY dimension, label, source_column`, id)
	if err != nil {
		return nil, fmt.Errorf("querying tags for %s: %w", id, err)
	}
	defer rows.Close()

	var tags []types.StudyTag
	for rows.Next() {
		var tag types.StudyTag
		var dim string
		if err := rows.Scan(&dim, &tag.Label, &tag.SourceColumn); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tag.Dimension = types.Dimension(dim)
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// TagCount is the number of studies carrying a label.
type TagCount struct {
	Dimension types.Dimension `json:"dimension" yaml:"dimension"`
	Label     string          `json:"label" yaml:"label"`
	Studies   int             `json:"studies" yaml:"studies"`
}

// TagCounts returns per-label study counts for d, most frequent first.
func (s *Store) TagCounts(ctx context.Context, d types.Dimension) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, COUNT(DISTINCT study_id) AS n FROM study_tags
		 WHERE dimension = ? GROUP BY label ORDER BY n DESC, label`, string(d))
	if err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		tc := TagCount{Dimension: d}
		if err := rows.Scan(&tc.Label, &tc.Studies); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
