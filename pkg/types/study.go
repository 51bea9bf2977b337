// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the amr-curator pipeline:
// study records and tables, the closed enumerations used by derived fields,
// the fixed column contracts of the input and output tables, and stage
// configuration.
package types

import "strings"

// Identity-key columns. Two records with the same values in all three
// columns describe the same study.
const (
	ColAuthor = "Author"
	ColYear   = "Year of publication"
	ColTitle  = "Title of paper"
)

// IdentityColumns returns the identity-key columns in key order.
func IdentityColumns() []string {
	return []string{ColAuthor, ColYear, ColTitle}
}

// Record is one study row: a mapping from column name to raw cell value.
// Column order is carried by the owning Table's Header.
type Record map[string]string

// Get returns the value of col, or "" when the column is absent.
func (r Record) Get(col string) string {
	return r[col]
}

// Lower returns the lower-cased value of col.
func (r Record) Lower(col string) string {
	return strings.ToLower(r[col])
}

// Clone returns a shallow copy of r that can be extended without touching r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key returns the identity key of the record.
func (r Record) Key() IdentityKey {
	return IdentityKey{
		Author: r[ColAuthor],
		Year:   r[ColYear],
		Title:  r[ColTitle],
	}
}

// IdentityKey is the (Author, Year of publication, Title of paper) triple.
// Fields are compared by exact text equality.
type IdentityKey struct {
	Author string
	Year   string
	Title  string
}

// Table is a header plus the records read under it.
type Table struct {
	// Header lists column names in file order.
	Header []string

	// Records holds rows in input order.
	Records []Record
}

// HasColumn reports whether col appears in the header.
func (t *Table) HasColumn(col string) bool {
	for _, h := range t.Header {
		if h == col {
			return true
		}
	}
	return false
}

// TagList is an ordered, duplicate-free list of labels.
type TagList []string

// TagSeparator joins list-valued fields in a single cell.
const TagSeparator = "; "

// String renders the list as a single cell value.
func (l TagList) String() string {
	return strings.Join(l, TagSeparator)
}

// Contains reports whether label is in the list.
func (l TagList) Contains(label string) bool {
	for _, v := range l {
		if v == label {
			return true
		}
	}
	return false
}

// SplitTags parses a cell written by TagList.String. Empty cells yield nil.
func SplitTags(cell string) TagList {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	out := make(TagList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
