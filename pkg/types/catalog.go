// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Study is one curated study as held in the study catalog.
type Study struct {
	// ID is a stable identifier derived from the identity key.
	ID string `json:"id" yaml:"id"`

	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`
	Title  string `json:"title" yaml:"title"`

	// Design is the MECE design category; DesignText the raw design cell.
	Design     DesignCategory `json:"design" yaml:"design"`
	DesignText string         `json:"design_text,omitempty" yaml:"design_text,omitempty"`

	Countries     []string      `json:"countries,omitempty" yaml:"countries,omitempty"`
	FacilityLevel FacilityLevel `json:"facility_level,omitempty" yaml:"facility_level,omitempty"`
	PeriodStart   string        `json:"period_start,omitempty" yaml:"period_start,omitempty"`
	PeriodEnd     string        `json:"period_end,omitempty" yaml:"period_end,omitempty"`

	// Missing lists the outcome groups with no informative data
	// (mortality, readmission, reoperation, los, economic).
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`

	Tags []StudyTag `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// StudyTag is one thematic label on a study. SourceColumn names the input
// column whose text produced the label; it is empty when the label only
// matched the joined text of several columns.
type StudyTag struct {
	Dimension    Dimension `json:"dimension" yaml:"dimension"`
	Label        string    `json:"label" yaml:"label"`
	SourceColumn string    `json:"source_column,omitempty" yaml:"source_column,omitempty"`
}
