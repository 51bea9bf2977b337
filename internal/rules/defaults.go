// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import "github.com/pdiddy/amr-curator/pkg/types"

// Built-in rule specs. Each constructor returns a fresh slice so callers can
// never mutate the defaults seen by another table.

// DesignSpecs returns the study-design rules in precedence order. The
// secondary-analysis rule precedes the plain randomization rule so that
// "secondary analysis of an RCT" is not read as a trial.
func DesignSpecs() []Spec {
	return []Spec{
		{string(types.DesignSecondaryRCT), `post-?hoc.*random|secondary analysis.*random|secondary.*rct`},
		{string(types.DesignRCT), `randomi[sz]ed|\brct\b`},
		{string(types.DesignBeforeAfter), `before-?after|pre[- ]?post|pre.*post`},
		{string(types.DesignCohort), `cohort|longitudinal`},
		{string(types.DesignCrossSectional), `cross[- ]?sectional|descriptive analysis|survey`},
		{string(types.DesignSurveillance), `surveillance`},
		{string(types.DesignLaboratoryBased), `laboratory`},
	}
}

// DriverSpecs returns the AMR-driver themes.
func DriverSpecs() []Spec {
	return []Spec{
		{"Antibiotic misuse/overuse", `misuse|overuse|irrational|injudicious|inappropriate|empiric|empirical|broad-?spectrum`},
		{"OTC/no-prescription access", `over[- ]?the[- ]?counter|otc|without (a )?prescription|sold without prescription|self-?medication|self[- ]?treatment`},
		{"Poor IPC/asepsis", `poor (infection|aseptic)|lack of aseptic|sterilization|hygiene|hand|contamination|asepsis|ipc|infection control`},
		{"Prolonged prophylaxis", `prolonged prophylaxis|long duration prophylaxis|post[- ]?operative antibiotics`},
		{"Lack of stewardship", `lack of (antimicrobial )?stewardship|no stewardship|absence of stewardship`},
		{"Limited diagnostics/lab", `lack of (routine )?culture|no microbiolog|limited diagnostic|lack of (laborator|lab) capacity`},
		{"Long stay/overcrowding", `prolonged hospital stay|overcrowd|long(er)? hospital stay`},
		{"Guideline non-adherence", `lack of adherence to (guidelines|protocol)|non[- ]adherence`},
		{"Supply/drug quality", `poor quality drug|dumping|supply chain`},
		{"Community factors", `community|drug pressure`},
	}
}

// InterventionSpecs returns the intervention/innovation themes.
func InterventionSpecs() []Spec {
	return []Spec{
		{"IPC measures", `infection prevention|ipc|operating theatre discipline|skin disinfection|steriliz`},
		{"AMS program", `antimicrobial stewardship|ams`},
		{"Surveillance (SSI/AMR)", `surveillance|monitoring|periodic profiling`},
		{"Guidelines/protocols", `guideline|protocol|policy|standard operating`},
		{"Pre-incision prophylaxis", `pre[- ]?incision|prophylaxis.*30[- ]?60`},
		{"Education/training", `training|education|seminar|on-?job`},
		{"Diagnostics/AST expansion", `culture|susceptibility testing|ast|diagnostic`},
		{"Surgical practice change", `tricosan|triclosan|skin preparation|glove|instrument change|suture`},
		{"Capacity building/lab", `laboratory capability|accreditation|slipta|capacity`},
	}
}

// GapSpecs returns the author-identified gap themes.
func GapSpecs() []Spec {
	return []Spec{
		{"Anaerobes/fungi not assessed", `anaerob|fung`},
		{"Limited surveillance/data", `limited (surveillance|data)|lack of (surveillance|data)|paucity`},
		{"No molecular testing", `lack of molecular|genomic|molecular epidemiolog`},
		{"Small/limited generalizability", `small sample|single (center|centre)|limited generalizability|short study`},
		{"Lost to follow-up", `loss to follow|lost to follow`},
		{"No standardized diagnosis", `lack of standardized diagnosis|diagnostic criteria`},
		{"Missing outcomes/economic", `no data on (mortality|economic|cost|length of stay|re-?operation|readmission)`},
		{"Resource constraints", `resource constraint|financial`},
		{"Policy/guideline gaps", `lack of (guideline|policy)`},
	}
}

// PolicySpecs returns the policy-response/capacity themes.
func PolicySpecs() []Spec {
	return []Spec{
		{"National surveillance absent", `no (national )?surveillance|lack of surveillance system`},
		{"AMS absent/needed", `stewardship (needed|lacking|absent)|need for ams`},
		{"Lab capacity limited", `limited laborator|lack of laborator|no routine (ast|culture)`},
		{"Accreditation/improving", `slipta|accredit|quality control`},
		{"Guidelines present/absent", `guideline|protocol`},
		{"Regulatory weak", `regulatory? (weak|absence)|over the counter|without prescription`},
		{"Coordination needed", `central(ized)? body|coordinating body`},
	}
}

// EconomicSpecs returns the economic-cost themes.
func EconomicSpecs() []Spec {
	return []Spec{
		{"Hospital cost savings", `cost saving|savings`},
		{"Patient out-of-pocket", `out[- ]?of[- ]?pocket|personal saving|family|caregiver|income`},
		{"Not reported", `not applicable|not reported|no data|not available`},
		{"Catastrophic expenditures", `catastrophic`},
		{"LOS/bed-day burden", `length of stay|bed[- ]?day`},
	}
}

// defaultTagSpecs maps each dimension to its built-in specs.
func defaultTagSpecs(d types.Dimension) []Spec {
	switch d {
	case types.DimensionDrivers:
		return DriverSpecs()
	case types.DimensionInterventions:
		return InterventionSpecs()
	case types.DimensionGaps:
		return GapSpecs()
	case types.DimensionPolicy:
		return PolicySpecs()
	case types.DimensionEconomic:
		return EconomicSpecs()
	}
	return nil
}
