// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records reads and writes study tables and removes duplicate
// studies. Tables are CSV with a header row; cell values are kept verbatim.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/amr-curator/pkg/types"
)

var (
	// ErrMissingColumn is returned when a required column is not in the header.
	ErrMissingColumn = errors.New("missing expected column")

	// ErrNoRecords is returned when a table has a header but no rows.
	ErrNoRecords = errors.New("input table has no records")
)

// Load reads the table at path. A missing file is an error naming the path.
func Load(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV table from r. A leading byte-order mark is dropped and
// header names are trimmed. Rows shorter than the header are padded with
// empty cells; cells beyond the header are ignored. An empty stream yields
// an empty table.
func Read(r io.Reader) (*types.Table, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &types.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	t := &types.Table{Header: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Records)+1, err)
		}
		rec := make(types.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func normalizeHeader(h string) string {
	return strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
}

// RequireColumns returns ErrMissingColumn naming the first col absent from t.
func RequireColumns(t *types.Table, cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return nil
}

// Deduplicate keeps the first record for each identity key, in input order,
// and reports how many later records were dropped.
func Deduplicate(recs []types.Record) ([]types.Record, int) {
	seen := make(map[types.IdentityKey]bool, len(recs))
	out := make([]types.Record, 0, len(recs))
	removed := 0
	for _, r := range recs {
		k := r.Key()
		if seen[k] {
			removed++
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out, removed
}
