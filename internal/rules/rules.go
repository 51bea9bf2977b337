// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules implements ordered rule tables of case-insensitive regular
// expressions. A table declares its match policy: PolicyFirst returns the
// label of the first matching rule, PolicyAll returns every matching label
// in declaration order. The same engine serves the study-design classifier
// and the thematic tagger.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidRuleSet is returned when a rule table or rule file is malformed.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// Policy selects how a Table combines matches.
type Policy string

const (
	// PolicyFirst stops at the first matching rule.
	PolicyFirst Policy = "first"
	// PolicyAll collects every matching rule.
	PolicyAll Policy = "all"
)

// Valid reports whether p is a declared policy.
func (p Policy) Valid() bool {
	return p == PolicyFirst || p == PolicyAll
}

// Spec is the uncompiled form of a rule as it appears in a rule file.
type Spec struct {
	Label   string `json:"label" yaml:"label"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Rule is a compiled label/pattern pair.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
	source  string
}

// Source returns the pattern as written, without the case-insensitive flag.
func (r Rule) Source() string {
	return r.source
}

// Table is an immutable, ordered list of rules with a match policy.
type Table struct {
	name   string
	policy Policy
	rules  []Rule
}

// NewTable compiles specs into a table. Patterns are matched
// case-insensitively. Labels must be non-empty and unique.
func NewTable(name string, policy Policy, specs []Spec) (*Table, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: table %s: unknown policy %q", ErrInvalidRuleSet, name, policy)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: table %s has no rules", ErrInvalidRuleSet, name)
	}

	seen := make(map[string]bool, len(specs))
	compiled := make([]Rule, 0, len(specs))
	for i, s := range specs {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			return nil, fmt.Errorf("%w: table %s rule %d has no label", ErrInvalidRuleSet, name, i)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: table %s: duplicate label %q", ErrInvalidRuleSet, name, label)
		}
		seen[label] = true

		re, err := regexp.Compile("(?i)" + s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: table %s rule %q: %v", ErrInvalidRuleSet, name, label, err)
		}
		compiled = append(compiled, Rule{Label: label, Pattern: re, source: s.Pattern})
	}

	return &Table{name: name, policy: policy, rules: compiled}, nil
}

// MustTable is NewTable for built-in tables; it panics on error.
func MustTable(name string, policy Policy, specs []Spec) *Table {
	t, err := NewTable(name, policy, specs)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Policy returns the table's match policy.
func (t *Table) Policy() Policy { return t.policy }

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Rules returns a copy of the rules in precedence order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Labels returns the declared labels in precedence order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Label
	}
	return out
}

// Specs returns the table in its uncompiled form.
func (t *Table) Specs() []Spec {
	out := make([]Spec, len(t.rules))
	for i, r := range t.rules {
		out[i] = Spec{Label: r.Label, Pattern: r.source}
	}
	return out
}

// Match applies the table to text. Under PolicyFirst the result holds at
// most one label; under PolicyAll it holds every matching label in
// declaration order. Empty text never matches.
func (t *Table) Match(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, r := range t.rules {
		if !r.Pattern.MatchString(text) {
			continue
		}
		out = append(out, r.Label)
		if t.policy == PolicyFirst {
			break
		}
	}
	return out
}

// First returns the first matching label regardless of policy.
func (t *Table) First(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, r := range t.rules {
		if r.Pattern.MatchString(text) {
			return r.Label, true
		}
	}
	return "", false
}
