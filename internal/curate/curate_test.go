// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/amr-curator/internal/records"
	"github.com/pdiddy/amr-curator/internal/rules"
	"github.com/pdiddy/amr-curator/pkg/types"
)

const rawTable = `Author,Year of publication,Title of paper,Study Design,Study Period,Country/Countries,Mortality - 30-day post-op,Morbidity - Readmission rate (%),Morbidity - Re-opertation rate (%),Hospital burden - Total length of stay (days),Economic - direct costs
Okeke,2019,SSI in Lagos,Randomized controlled trial of pre-incision prophylaxis,March 2015 to June 2016,"Nigeria, Kenya and Democratic Republic of Congo",2.1,4,1.5,12,USD 300
Mwangi,2020,Post-caesarean SSI,multicentre cross-sectional descriptive analysis,2019,Kenya,not reported,,Not reported,,not reported
Okeke,2019,SSI in Lagos,Cohort,2014,Ghana,,,,,
`

func writeInput(t *testing.T, content string) types.CurateConfig {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "raw", "input.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(in), 0o755))
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	return types.CurateConfig{
		Paths: types.PathsConfig{
			Input:     in,
			Cleaned:   filepath.Join(dir, "raw", "cleaned.csv"),
			Enriched:  filepath.Join(dir, "processed", "enriched.csv"),
			Shortlist: filepath.Join(dir, "processed", "shortlist.csv"),
		},
		Workers: 1,
	}
}

func TestRun(t *testing.T) {
	cfg := writeInput(t, rawTable)
	var out bytes.Buffer

	sum, err := Run(context.Background(), cfg, &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Read: 3, Duplicates: 1, Written: 2, Shortlisted: 1}, sum)
	assert.Equal(t, 3, sum.Total())
	assert.Contains(t, out.String(), "Removed 1 duplicate rows (2 remaining)")

	enriched, err := records.Load(cfg.Paths.Enriched)
	require.NoError(t, err)
	require.Len(t, enriched.Records, 2)
	assert.Equal(t, types.ColDesignMECE, enriched.Header[11])
	assert.Equal(t, types.ColHasEconomic, enriched.Header[len(enriched.Header)-1])

	first := enriched.Records[0]
	assert.Equal(t, "Nigeria, Kenya and Democratic Republic of Congo", first.Get(types.ColCountries), "first occurrence kept")
	assert.Equal(t, string(types.DesignRCT), first.Get(types.ColDesignMECE))
	assert.Equal(t, "2015-03-01", first.Get(types.ColPeriodStart))
	assert.Equal(t, "2016-06-28", first.Get(types.ColPeriodEnd))
	assert.Equal(t, "Nigeria; Kenya; Democratic Republic of the Congo", first.Get(types.ColCountryList))

	second := enriched.Records[1]
	assert.Equal(t, string(types.DesignCrossSectional), second.Get(types.ColDesignMECE))
	for _, col := range types.PresenceFlagColumns() {
		assert.Equal(t, string(types.No), second.Get(col), col)
	}

	cleaned, err := os.ReadFile(cfg.Paths.Cleaned)
	require.NoError(t, err)
	enrichedBytes, err := os.ReadFile(cfg.Paths.Enriched)
	require.NoError(t, err)
	assert.Equal(t, enrichedBytes, cleaned)

	shortlist, err := records.Load(cfg.Paths.Shortlist)
	require.NoError(t, err)
	assert.Equal(t, types.ShortlistColumns(), shortlist.Header)
	require.Len(t, shortlist.Records, 1)
	assert.Equal(t, "Mwangi", shortlist.Records[0].Get(types.ColAuthor))
}

func TestRun_RoundTrip(t *testing.T) {
	cfg := writeInput(t, rawTable)
	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	raw, err := records.Load(cfg.Paths.Input)
	require.NoError(t, err)
	unique, _ := records.Deduplicate(raw.Records)
	enriched, err := records.Load(cfg.Paths.Enriched)
	require.NoError(t, err)

	assert.Equal(t, raw.Header, enriched.Header[:len(raw.Header)])
	for i, r := range unique {
		for _, col := range raw.Header {
			assert.Equal(t, strings.TrimSpace(r.Get(col)), strings.TrimSpace(enriched.Records[i].Get(col)), "row %d column %q", i, col)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := writeInput(t, rawTable)
	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.Paths.Enriched)
	require.NoError(t, err)

	cfg.Workers = 4
	_, err = Run(context.Background(), cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.Paths.Enriched)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRun_NoShortlist(t *testing.T) {
	content := "Author,Year of publication,Title of paper,Mortality - 30-day post-op,Morbidity - Readmission rate (%),Morbidity - Re-opertation rate (%),Hospital burden - Total length of stay (days),Economic - direct costs\n" +
		"A,2020,T,1,2,3,4,5\n"
	cfg := writeInput(t, content)
	cfg.Paths.Cleaned = ""
	var out bytes.Buffer

	sum, err := Run(context.Background(), cfg, &out, nil)
	require.NoError(t, err)
	assert.Zero(t, sum.Shortlisted)
	assert.Contains(t, out.String(), "No re-extraction targets")
	assert.NoFileExists(t, cfg.Paths.Shortlist)
}

func TestRun_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := writeInput(t, rawTable)

	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, zap.New(core))
	require.NoError(t, err)

	done := logs.FilterMessage("curation complete").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.EqualValues(t, 2, fields["records"])
	assert.EqualValues(t, 1, fields["duplicates"])
	assert.EqualValues(t, 1, fields["shortlisted"])
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing identity column", func(t *testing.T) {
		cfg := writeInput(t, "Author,Title of paper\nA,T\n")
		_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
		require.ErrorIs(t, err, records.ErrMissingColumn)
		assert.Contains(t, err.Error(), types.ColYear)
		assert.NoFileExists(t, cfg.Paths.Enriched)
	})

	t.Run("no records", func(t *testing.T) {
		cfg := writeInput(t, "Author,Year of publication,Title of paper\n")
		_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
		require.ErrorIs(t, err, records.ErrNoRecords)
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := writeInput(t, rawTable)
		cfg.Paths.Input = filepath.Join(t.TempDir(), "nope.csv")
		_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.csv")
	})

	t.Run("bad rules file", func(t *testing.T) {
		cfg := writeInput(t, rawTable)
		cfg.RulesFile = filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(cfg.RulesFile, []byte("design:\n  - label: Bogus\n    pattern: x\n"), 0o644))
		_, err := Run(context.Background(), cfg, &bytes.Buffer{}, nil)
		require.ErrorIs(t, err, rules.ErrInvalidRuleSet)
		assert.NoFileExists(t, cfg.Paths.Enriched)
	})
}
