// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

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

func study(author, year, title string) types.Record {
	return types.Record{types.ColAuthor: author, types.ColYear: year, types.ColTitle: title}
}

func TestRead_NormalizesHeader(t *testing.T) {
	in := "\ufeff Author ,Year of publication,\tTitle of paper\n" +
		"Okeke,2019,SSI in Lagos\n"
	tbl, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Author", "Year of publication", "Title of paper"}, tbl.Header)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "Okeke", tbl.Records[0].Get(types.ColAuthor))
	assert.NoError(t, RequireColumns(tbl, types.IdentityColumns()...))
}

func TestRead_RaggedRows(t *testing.T) {
	in := "A,B,C\n1\n1,2,3,4\n"
	tbl, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)

	assert.Equal(t, types.Record{"A": "1", "B": "", "C": ""}, tbl.Records[0])
	assert.Equal(t, types.Record{"A": "1", "B": "2", "C": "3"}, tbl.Records[1])
}

func TestRead_KeepsCellsVerbatim(t *testing.T) {
	in := "A,B\n\"  padded  \",\"line one\nline two\"\n"
	tbl, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "  padded  ", tbl.Records[0].Get("A"))
	assert.Equal(t, "line one\nline two", tbl.Records[0].Get("B"))
}

func TestRead_Empty(t *testing.T) {
	tbl, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Records)
}

func TestRequireColumns(t *testing.T) {
	tbl := &types.Table{Header: []string{types.ColAuthor, types.ColTitle}}
	err := RequireColumns(tbl, types.IdentityColumns()...)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), types.ColYear)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDeduplicate(t *testing.T) {
	first := study("Okeke", "2019", "SSI in Lagos")
	first["Setting"] = "first"
	dup := study("Okeke", "2019", "SSI in Lagos")
	dup["Setting"] = "second"
	other := study("Okeke", "2020", "SSI in Lagos")
	recs := []types.Record{first, other, dup, study("Mwangi", "2019", "SSI in Lagos")}

	got, removed := Deduplicate(recs)
	assert.Equal(t, 1, removed)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Get("Setting"))
	assert.Equal(t, "2020", got[1].Get(types.ColYear))
	assert.Equal(t, "Mwangi", got[2].Get(types.ColAuthor))
}

func TestDeduplicate_ExactMatchOnly(t *testing.T) {
	recs := []types.Record{
		study("Okeke", "2019", "SSI in Lagos"),
		study("okeke", "2019", "SSI in Lagos"),
		study("Okeke ", "2019", "SSI in Lagos"),
	}
	got, removed := Deduplicate(recs)
	assert.Zero(t, removed)
	assert.Len(t, got, 3)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	recs := []types.Record{
		study("A", "2019", "T"),
		study("A", "2019", "T"),
		study("B", "2019", "T"),
		study("A", "2019", "T"),
	}
	once, removed := Deduplicate(recs)
	assert.Equal(t, 2, removed)

	twice, removed := Deduplicate(once)
	assert.Zero(t, removed)
	assert.Equal(t, once, twice)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	recs := []types.Record{
		{"A": "1", "B": "x, y"},
		{"A": "2"},
	}
	require.NoError(t, Write(&buf, []string{"A", "B"}, recs))
	assert.Equal(t, "A,B\n1,\"x, y\"\n2,\n", buf.String())
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	header := []string{types.ColAuthor, types.ColYear, types.ColTitle}
	recs := []types.Record{study("Okeke", "2019", "SSI; \"quoted\" title")}

	require.NoError(t, WriteFile(path, header, recs))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, header, tbl.Header)
	assert.Equal(t, recs, tbl.Records)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFile_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0o644))

	require.NoError(t, WriteFile(path, []string{"A"}, []types.Record{{"A": "new"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\nnew\n", string(data))
}
