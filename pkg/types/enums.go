// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DesignCategory is the MECE study-design label.
type DesignCategory string

const (
	DesignRCT             DesignCategory = "RCT"
	DesignSecondaryRCT    DesignCategory = "Secondary analysis (RCT)"
	DesignBeforeAfter     DesignCategory = "Before-after"
	DesignCohort          DesignCategory = "Cohort"
	DesignCrossSectional  DesignCategory = "Cross-sectional"
	DesignSurveillance    DesignCategory = "Surveillance"
	DesignLaboratoryBased DesignCategory = "Laboratory-based"
	DesignOther           DesignCategory = "Other"
)

// DesignCategories lists every design label. Other is last.
func DesignCategories() []DesignCategory {
	return []DesignCategory{
		DesignRCT,
		DesignSecondaryRCT,
		DesignBeforeAfter,
		DesignCohort,
		DesignCrossSectional,
		DesignSurveillance,
		DesignLaboratoryBased,
		DesignOther,
	}
}

// Valid reports whether d is one of the declared categories.
func (d DesignCategory) Valid() bool {
	switch d {
	case DesignRCT, DesignSecondaryRCT, DesignBeforeAfter, DesignCohort,
		DesignCrossSectional, DesignSurveillance, DesignLaboratoryBased, DesignOther:
		return true
	}
	return false
}

// TriState is a yes/no flag that can also be unclear when the source cell
// was blank.
type TriState string

const (
	Yes     TriState = "yes"
	No      TriState = "no"
	Unclear TriState = "unclear"
)

// Valid reports whether t is yes, no, or unclear.
func (t TriState) Valid() bool {
	switch t {
	case Yes, No, Unclear:
		return true
	}
	return false
}

// DenominatorType says what the SSI incidence rate was computed over.
type DenominatorType string

const (
	DenominatorProcedures DenominatorType = "procedures"
	DenominatorSSICohort  DenominatorType = "SSI cohort only"
	DenominatorUnclear    DenominatorType = "unclear"
)

// Valid reports whether d is a declared denominator type.
func (d DenominatorType) Valid() bool {
	switch d {
	case DenominatorProcedures, DenominatorSSICohort, DenominatorUnclear:
		return true
	}
	return false
}

// FacilityLevel is the best guess at the level of the study facility.
type FacilityLevel string

const (
	FacilityTertiary    FacilityLevel = "tertiary/referral/teaching"
	FacilityDistrict    FacilityLevel = "district"
	FacilityPrivate     FacilityLevel = "private"
	FacilityRegional    FacilityLevel = "regional"
	FacilityUnspecified FacilityLevel = "unspecified"
)

// Valid reports whether f is a declared facility level.
func (f FacilityLevel) Valid() bool {
	switch f {
	case FacilityTertiary, FacilityDistrict, FacilityPrivate, FacilityRegional, FacilityUnspecified:
		return true
	}
	return false
}

// Dimension names one of the five thematic tagging dimensions.
type Dimension string

const (
	DimensionDrivers       Dimension = "drivers"
	DimensionInterventions Dimension = "interventions"
	DimensionGaps          Dimension = "gaps"
	DimensionPolicy        Dimension = "policy"
	DimensionEconomic      Dimension = "economic"
)

// Dimensions lists the tagging dimensions in output-column order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionDrivers,
		DimensionInterventions,
		DimensionGaps,
		DimensionPolicy,
		DimensionEconomic,
	}
}

// Valid reports whether d is a declared dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionDrivers, DimensionInterventions, DimensionGaps, DimensionPolicy, DimensionEconomic:
		return true
	}
	return false
}

// Column returns the derived output column holding tags for d.
func (d Dimension) Column() string {
	switch d {
	case DimensionDrivers:
		return ColDriversThemes
	case DimensionInterventions:
		return ColInterventionsThemes
	case DimensionGaps:
		return ColGapsThemes
	case DimensionPolicy:
		return ColPolicyThemes
	case DimensionEconomic:
		return ColEconomicThemes
	}
	return ""
}

// SourceColumns returns the input columns tagged for d. The economic
// dimension reads two columns which are joined before matching.
func (d Dimension) SourceColumns() []string {
	switch d {
	case DimensionDrivers:
		return []string{ColDrivers}
	case DimensionInterventions:
		return []string{ColInterventions}
	case DimensionGaps:
		return []string{ColGaps}
	case DimensionPolicy:
		return []string{ColPolicy}
	case DimensionEconomic:
		return []string{ColEconDirect, ColEconIndirect}
	}
	return nil
}
