// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/amr-curator/pkg/types"
)

// Set bundles the design table and one tag table per dimension. A Set is
// immutable once built and safe to share between goroutines.
type Set struct {
	design *Table
	tags   map[types.Dimension]*Table
}

// Default returns the built-in rule set.
func Default() *Set {
	s := &Set{
		design: MustTable("design", PolicyFirst, DesignSpecs()),
		tags:   make(map[types.Dimension]*Table, len(types.Dimensions())),
	}
	for _, d := range types.Dimensions() {
		s.tags[d] = MustTable(string(d), PolicyAll, defaultTagSpecs(d))
	}
	return s
}

// Design returns the first-match study-design table.
func (s *Set) Design() *Table { return s.design }

// Tags returns the union-match table for d, or nil for an unknown dimension.
func (s *Set) Tags(d types.Dimension) *Table { return s.tags[d] }

// File is the YAML layout of a rule file. Tables left out keep their
// built-in rules.
type File struct {
	Design []Spec            `yaml:"design,omitempty"`
	Tags   map[string][]Spec `yaml:"tags,omitempty"`
}

// Load reads a rule file and overlays it on the built-in set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidRuleSet, path, err)
	}
	return FromFile(f)
}

// FromFile builds a Set from f, falling back to built-in tables for
// anything f leaves out. Design labels must be valid design categories.
func FromFile(f File) (*Set, error) {
	s := Default()

	if len(f.Design) > 0 {
		for _, spec := range f.Design {
			if !types.DesignCategory(spec.Label).Valid() {
				return nil, fmt.Errorf("%w: design label %q is not a known category", ErrInvalidRuleSet, spec.Label)
			}
		}
		t, err := NewTable("design", PolicyFirst, f.Design)
		if err != nil {
			return nil, err
		}
		s.design = t
	}

	for name, specs := range f.Tags {
		d := types.Dimension(name)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: unknown tag dimension %q", ErrInvalidRuleSet, name)
		}
		t, err := NewTable(name, PolicyAll, specs)
		if err != nil {
			return nil, err
		}
		s.tags[d] = t
	}

	return s, nil
}

// ToFile returns the full set in rule-file form.
func (s *Set) ToFile() File {
	f := File{
		Design: s.design.Specs(),
		Tags:   make(map[string][]Spec, len(s.tags)),
	}
	for d, t := range s.tags {
		f.Tags[string(d)] = t.Specs()
	}
	return f
}

// WriteYAML dumps the set as a rule file that Load accepts.
func (s *Set) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(s.ToFile())
}

// Describe writes a human-readable listing of every table in precedence
// order.
func (s *Set) Describe(w io.Writer) {
	describeTable(w, s.design)
	for _, d := range types.Dimensions() {
		fmt.Fprintln(w)
		describeTable(w, s.tags[d])
	}
}

func describeTable(w io.Writer, t *Table) {
	fmt.Fprintf(w, "%s (policy: %s, %d rules)\n", t.Name(), t.Policy(), t.Len())
	for i, r := range t.Rules() {
		fmt.Fprintf(w, "  %2d. %-32s %s\n", i+1, r.Label, r.Source())
	}
}
