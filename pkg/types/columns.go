// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source columns of the raw extraction table.
const (
	ColStudyDesign     = "Study Design"
	ColStudyPeriod     = "Study Period"
	ColSampleSize      = "Total Sample Size (N)"
	ColProcedures      = "Total Procedures"
	ColSSIs            = "Total SSIs"
	ColSSIIsolates     = "Total SSI Isolates"
	ColSexFemale       = "Sex (%Female)"
	ColAdherence       = "Adherence to Guidelines (%)"
	ColSSIIncidence    = "SSI Incidence Rate"
	ColDiagnosisMethod = "Method of SSI Diagnosis"
	ColCountries       = "Country/Countries"
	ColSetting         = "Setting"
	ColSpeciality      = "Surgical Speciality"
	ColProceduresText  = "Specific Procedures"
	ColPathogen1       = "Pathogen 1 Name (Name of the most common isolated pathogen)"
	ColPathogen2       = "Pathogen 2 Name (Name of the 2nd most common pathogen)"
	ColPathogen3       = "Pathogen 3 Name (Name of the 3rd most common isolated pathogen)"
	ColPopulation      = "Population Description"

	ColDrivers       = "Reported Drivers of AMR"
	ColInterventions = "Interventions/Innovations Described"
	ColGaps          = "Gaps Identified by Authors"
	ColPolicy        = "Policy Response/Capacity"
	ColEconDirect    = "Economic - direct costs"
	ColEconIndirect  = "Economic - indirect costs"

	ColMortalityAttributable = "Mortality - SSI attributable rate (%)"
	ColMortality30Day        = "Mortality - 30-day post-op"
	ColMortality90Day        = "Mortality - 90-day post-op (%)"
	ColReadmission           = "Morbidity - Readmission rate (%)"
	// The extraction template spells this header "Re-opertation".
	ColReoperation    = "Morbidity - Re-opertation rate (%)"
	ColTotalLOS       = "Hospital burden - Total length of stay (days)"
	ColAdditionalStay = "Morbidity - Additional Hospital Stay (days)"
)

// Derived columns appended by enrichment.
const (
	ColDesignMECE          = "Study Design (MECE)"
	ColDriversThemes       = "Drivers_AMR_Themes"
	ColInterventionsThemes = "Interventions_Themes"
	ColGapsThemes          = "Gaps_Themes"
	ColPolicyThemes        = "Policy_Capacity_Themes"
	ColEconomicThemes      = "Economic_Costs_Themes"
	ColYearStart           = "year_start"
	ColYearEnd             = "year_end"
	ColPeriodStart         = "period_start_date"
	ColPeriodEnd           = "period_end_date"
	ColSampleN             = "total_sample_n_parsed"
	ColProceduresN         = "total_procedures_n_parsed"
	ColSSIsN               = "total_ssis_n_parsed"
	ColIsolatesN           = "total_ssi_isolates_n_parsed"
	ColSexFemalePct        = "sex_female_pct_parsed"
	ColAdherencePct        = "adherence_guidelines_pct_parsed"
	ColIncidencePct        = "ssi_incidence_pct_parsed"
	ColDiagnosisCDC        = "diagnosis_cdc_guidelines"
	ColLabCulture          = "lab_culture_confirmed"
	ColFollowup30d         = "followup_30d"
	ColDenominator         = "ssi_denominator_type"
	ColCountryList         = "country_list"
	ColFacilityLevel       = "facility_level_guess"
	ColSpecialitySet       = "speciality_set"
	ColProcedureGroup      = "procedure_group"
	ColPathogen1Std        = "pathogen1_std"
	ColPathogen2Std        = "pathogen2_std"
	ColPathogen3Std        = "pathogen3_std"
	ColHasMortality        = "has_mortality_data"
	ColHasReadmission      = "has_readmission_data"
	ColHasReoperation      = "has_reoperation_data"
	ColHasLOS              = "has_los_data"
	ColHasEconomic         = "has_economic_costs"
)

// DerivedColumns returns the derived columns in output order.
func DerivedColumns() []string {
	return []string{
		ColDesignMECE,
		ColDriversThemes, ColInterventionsThemes, ColGapsThemes, ColPolicyThemes, ColEconomicThemes,
		ColYearStart, ColYearEnd, ColPeriodStart, ColPeriodEnd,
		ColSampleN, ColProceduresN, ColSSIsN, ColIsolatesN,
		ColSexFemalePct, ColAdherencePct, ColIncidencePct,
		ColDiagnosisCDC, ColLabCulture, ColFollowup30d, ColDenominator,
		ColCountryList, ColFacilityLevel, ColSpecialitySet, ColProcedureGroup,
		ColPathogen1Std, ColPathogen2Std, ColPathogen3Std,
		ColHasMortality, ColHasReadmission, ColHasReoperation, ColHasLOS, ColHasEconomic,
	}
}

// PresenceFlagColumns returns the outcome-presence flag columns.
func PresenceFlagColumns() []string {
	return []string{ColHasMortality, ColHasReadmission, ColHasReoperation, ColHasLOS, ColHasEconomic}
}

// ShortlistColumns returns the columns projected into the re-extraction
// shortlist, in output order.
func ShortlistColumns() []string {
	return []string{
		ColAuthor, ColYear, ColTitle, ColCountries, ColStudyDesign, ColDesignMECE,
		ColProceduresN, ColSSIsN, ColIncidencePct,
		ColHasMortality, ColHasReadmission, ColHasReoperation, ColHasLOS, ColHasEconomic,
		ColDiagnosisMethod, ColEconDirect, ColEconIndirect,
	}
}
