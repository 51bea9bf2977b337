// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/amr-curator/internal/classify"
	"github.com/pdiddy/amr-curator/internal/rules"
	"github.com/pdiddy/amr-curator/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleRecord() types.Record {
	return types.Record{
		types.ColAuthor:          "Okeke",
		types.ColYear:            "2019",
		types.ColTitle:           "Surgical site infections in Lagos",
		types.ColStudyDesign:     "Randomized controlled trial of pre-incision prophylaxis",
		types.ColStudyPeriod:     "March 2015 to June 2016",
		types.ColSampleSize:      "1,234 patients",
		types.ColProcedures:      "",
		types.ColSSIs:            "56",
		types.ColSSIIsolates:     "n/a",
		types.ColSexFemale:       "52.5%",
		types.ColSSIIncidence:    "4.5%",
		types.ColDiagnosisMethod: "CDC criteria, wound culture",
		types.ColPopulation:      "Patients with SSI",
		types.ColCountries:       "Nigeria, Kenya and Democratic Republic of Congo",
		types.ColSetting:         "Tertiary teaching hospital",
		types.ColSpeciality:      "General surgery",
		types.ColProceduresText:  "Laparotomy",
		types.ColPathogen1:       "Coagulase-negative Staphylococci",
		types.ColPathogen2:       "E. coli",
		types.ColDrivers:         "Empirical broad-spectrum use and self-medication",
		types.ColGaps:            "Small sample size",
		types.ColEconDirect:      "not reported",
		types.ColMortality30Day:  "Not reported",
		types.ColReadmission:     "",
	}
}

func TestEnrich(t *testing.T) {
	e := New(nil)
	got := e.Enrich(sampleRecord())

	want := map[string]string{
		types.ColDesignMECE:          string(types.DesignRCT),
		types.ColDriversThemes:       "Antibiotic misuse/overuse; OTC/no-prescription access",
		types.ColInterventionsThemes: "",
		types.ColGapsThemes:          "Small/limited generalizability",
		types.ColPolicyThemes:        "",
		types.ColEconomicThemes:      "Not reported",
		types.ColYearStart:           "2015",
		types.ColYearEnd:             "2016",
		types.ColPeriodStart:         "2015-03-01",
		types.ColPeriodEnd:           "2016-06-28",
		types.ColSampleN:             "1234",
		types.ColProceduresN:         "",
		types.ColSSIsN:               "56",
		types.ColIsolatesN:           "",
		types.ColSexFemalePct:        "52.5",
		types.ColAdherencePct:        "",
		types.ColIncidencePct:        "4.5",
		types.ColDiagnosisCDC:        string(types.Yes),
		types.ColLabCulture:          string(types.Yes),
		types.ColFollowup30d:         string(types.No),
		types.ColDenominator:         string(types.DenominatorSSICohort),
		types.ColCountryList:         "Nigeria; Kenya; Democratic Republic of the Congo",
		types.ColFacilityLevel:       string(types.FacilityTertiary),
		types.ColSpecialitySet:       "General Surgery",
		types.ColProcedureGroup:      "Laparotomy",
		types.ColPathogen1Std:        "CoNS",
		types.ColPathogen2Std:        "Escherichia coli",
		types.ColPathogen3Std:        "",
		types.ColHasMortality:        string(types.No),
		types.ColHasReadmission:      string(types.No),
		types.ColHasReoperation:      string(types.No),
		types.ColHasLOS:              string(types.No),
		types.ColHasEconomic:         string(types.No),
	}

	derived := make(map[string]string, len(want))
	for _, col := range types.DerivedColumns() {
		v, ok := got[col]
		require.True(t, ok, "derived column %q missing", col)
		derived[col] = v
	}
	if diff := cmp.Diff(want, derived); diff != "" {
		t.Errorf("Enrich() derived mismatch (-want +got):\n%s", diff)
	}
}

func TestEnrich_PreservesOriginal(t *testing.T) {
	rec := sampleRecord()
	before := rec.Clone()

	got := New(nil).Enrich(rec)

	assert.Equal(t, before, rec, "input record was modified")
	for col, v := range before {
		assert.Equal(t, v, got[col], col)
	}
}

func TestEnrich_BlankRecord(t *testing.T) {
	got := New(nil).Enrich(types.Record{})

	assert.Equal(t, string(types.DesignOther), got[types.ColDesignMECE])
	assert.Equal(t, string(types.Unclear), got[types.ColDiagnosisCDC])
	assert.Equal(t, string(types.DenominatorUnclear), got[types.ColDenominator])
	assert.Equal(t, string(types.FacilityUnspecified), got[types.ColFacilityLevel])
	for _, col := range types.PresenceFlagColumns() {
		assert.Equal(t, string(types.No), got[col], col)
	}
}

func TestEnrich_CustomRules(t *testing.T) {
	set, err := rules.FromFile(rules.File{
		Design: []rules.Spec{{Label: string(types.DesignSurveillance), Pattern: `audit`}},
	})
	require.NoError(t, err)

	e := New(nil)
	custom := New(classify.New(set))
	rec := types.Record{types.ColStudyDesign: "Clinical audit"}

	assert.Equal(t, string(types.DesignOther), e.Enrich(rec)[types.ColDesignMECE])
	assert.Equal(t, string(types.DesignSurveillance), custom.Enrich(rec)[types.ColDesignMECE])
}

func TestEnrichAll_Order(t *testing.T) {
	recs := make([]types.Record, 50)
	for i := range recs {
		r := sampleRecord()
		r[types.ColTitle] = fmt.Sprintf("Study %d", i)
		r[types.ColSSIs] = fmt.Sprint(i)
		recs[i] = r
	}
	e := New(nil)

	seq, err := e.EnrichAll(context.Background(), recs, 1)
	require.NoError(t, err)
	par, err := e.EnrichAll(context.Background(), recs, 8)
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel enrichment differs (-seq +par):\n%s", diff)
	}
	for i, r := range par {
		assert.Equal(t, fmt.Sprint(i), r[types.ColSSIsN])
	}
}

func TestEnrichAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs := []types.Record{sampleRecord(), sampleRecord()}

	for _, workers := range []int{1, 4} {
		_, err := New(nil).EnrichAll(ctx, recs, workers)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}
