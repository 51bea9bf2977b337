// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/amr-curator/pkg/types"
)

func TestNewTableRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		specs  []Spec
		errMsg string
	}{
		{"unknown policy", Policy("some"), []Spec{{"a", "a"}}, "unknown policy"},
		{"no rules", PolicyAll, nil, "no rules"},
		{"empty label", PolicyAll, []Spec{{" ", "a"}}, "no label"},
		{"duplicate label", PolicyAll, []Spec{{"a", "x"}, {"a", "y"}}, "duplicate label"},
		{"bad pattern", PolicyFirst, []Spec{{"a", "(unclosed"}}, `rule "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable("t", tt.policy, tt.specs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRuleSet)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMatchPolicies(t *testing.T) {
	specs := []Spec{{"alpha", "a+"}, {"beta", "b"}, {"gamma", "ab"}}

	first := MustTable("first", PolicyFirst, specs)
	all := MustTable("all", PolicyAll, specs)

	assert.Equal(t, []string{"alpha"}, first.Match("AB"))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, all.Match("AB"))
	assert.Equal(t, []string{"beta"}, all.Match("b only"))
	assert.Nil(t, all.Match(""))
	assert.Nil(t, first.Match("zzz"))

	label, ok := all.First("xb")
	assert.True(t, ok)
	assert.Equal(t, "beta", label)
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	tbl := MustTable("t", PolicyAll, []Spec{{"a", "x"}, {"b", "y"}})

	rs := tbl.Rules()
	rs[0].Label = "mutated"
	assert.Equal(t, []string{"a", "b"}, tbl.Labels())
	assert.Equal(t, "x", tbl.Rules()[0].Source())
}

func TestDefaultSetShape(t *testing.T) {
	s := Default()

	assert.Equal(t, PolicyFirst, s.Design().Policy())
	for _, l := range s.Design().Labels() {
		assert.True(t, types.DesignCategory(l).Valid(), "design label %q", l)
	}
	assert.NotContains(t, s.Design().Labels(), string(types.DesignOther))

	for _, d := range types.Dimensions() {
		tbl := s.Tags(d)
		require.NotNil(t, tbl, "dimension %s", d)
		assert.Equal(t, PolicyAll, tbl.Policy())
		assert.Positive(t, tbl.Len())
	}
}

func TestDesignPrecedence(t *testing.T) {
	labels := Default().Design().Labels()
	idx := func(c types.DesignCategory) int {
		for i, l := range labels {
			if l == string(c) {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx(types.DesignSecondaryRCT), idx(types.DesignRCT))
	assert.Less(t, idx(types.DesignRCT), idx(types.DesignCohort))
	assert.Less(t, idx(types.DesignRCT), idx(types.DesignCrossSectional))
}

func TestFromFileOverlaysTables(t *testing.T) {
	s, err := FromFile(File{
		Tags: map[string][]Spec{
			"gaps": {{"Only gap", "gap"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Only gap"}, s.Tags(types.DimensionGaps).Labels())
	assert.Equal(t, Default().Tags(types.DimensionDrivers).Labels(), s.Tags(types.DimensionDrivers).Labels())
	assert.Equal(t, Default().Design().Labels(), s.Design().Labels())
}

func TestFromFileValidation(t *testing.T) {
	_, err := FromFile(File{Design: []Spec{{"Case series", "case series"}}})
	require.ErrorIs(t, err, ErrInvalidRuleSet)
	assert.Contains(t, err.Error(), "Case series")

	_, err = FromFile(File{Tags: map[string][]Spec{"outcomes": {{"x", "x"}}}})
	require.ErrorIs(t, err, ErrInvalidRuleSet)
	assert.Contains(t, err.Error(), "outcomes")
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WriteYAML(&buf))

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Design().Specs(), loaded.Design().Specs())
	for _, d := range types.Dimensions() {
		assert.Equal(t, Default().Tags(d).Specs(), loaded.Tags(d).Specs(), "dimension %s", d)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rule file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("design: [unterminated"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidRuleSet)
}

func TestDescribeListsEveryTable(t *testing.T) {
	var buf bytes.Buffer
	Default().Describe(&buf)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "design (policy: first"))
	for _, d := range types.Dimensions() {
		assert.Contains(t, out, string(d)+" (policy: all")
	}
}
