// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps free-text study descriptions onto the MECE design
// categories and the five thematic tag dimensions.
package classify

import (
	"strings"

	"github.com/pdiddy/amr-curator/internal/rules"
	"github.com/pdiddy/amr-curator/pkg/types"
)

// Classifier applies a rule set to study records. It holds no mutable state.
type Classifier struct {
	rules *rules.Set
}

// New returns a Classifier over set. A nil set uses the built-in rules.
func New(set *rules.Set) *Classifier {
	if set == nil {
		set = rules.Default()
	}
	return &Classifier{rules: set}
}

// Design returns the first design category whose rule matches text, or
// DesignOther. It never returns an empty or undeclared category.
func (c *Classifier) Design(text string) types.DesignCategory {
	label, ok := c.rules.Design().First(text)
	if !ok {
		return types.DesignOther
	}
	cat := types.DesignCategory(label)
	if !cat.Valid() {
		return types.DesignOther
	}
	return cat
}

// Tags returns every label of dimension d whose rule matches text, in
// rule declaration order.
func (c *Classifier) Tags(d types.Dimension, text string) types.TagList {
	t := c.rules.Tags(d)
	if t == nil {
		return nil
	}
	return types.TagList(t.Match(text))
}

// TagRecord tags the source column(s) of d on rec. When d reads several
// columns they are lower-cased and joined with a space, so a match in any of
// them contributes the label.
func (c *Classifier) TagRecord(d types.Dimension, rec types.Record) types.TagList {
	cols := d.SourceColumns()
	if len(cols) == 1 {
		return c.Tags(d, rec.Get(cols[0]))
	}
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = rec.Lower(col)
	}
	joined := strings.Join(parts, " ")
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	return c.Tags(d, joined)
}

// TagRecordByColumn tags each source column of d separately and reports
// which labels came from which column. Used where per-column provenance
// matters; TagRecord remains the value written to the output table.
func (c *Classifier) TagRecordByColumn(d types.Dimension, rec types.Record) map[string]types.TagList {
	out := make(map[string]types.TagList)
	for _, col := range d.SourceColumns() {
		if tags := c.Tags(d, rec.Get(col)); len(tags) > 0 {
			out[col] = tags
		}
	}
	return out
}
