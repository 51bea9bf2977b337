// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default file locations, relative to the project root.
const (
	DefaultInputPath     = "data/raw_data/data_extraction_amr_ssi_ecsa.csv"
	DefaultCleanedPath   = "data/raw_data/data_extraction_amr_ssi_ecsa_cleaned_mece.csv"
	DefaultEnrichedPath  = "data/processed_data/data_extraction_amr_ssi_ecsa_enriched.csv"
	DefaultShortlistPath = "data/processed_data/reextraction_targets.csv"
	DefaultCatalogPath   = "data/processed_data/studies.db"
)

// PathsConfig holds the input and output table locations.
type PathsConfig struct {
	// Input is the raw extraction table.
	Input string `json:"input" yaml:"input" mapstructure:"input" validate:"required"`

	// Cleaned is an optional second copy of the enriched table next to the
	// raw input. Empty disables it.
	Cleaned string `json:"cleaned,omitempty" yaml:"cleaned,omitempty" mapstructure:"cleaned"`

	// Enriched is the enriched table read by audit and catalog.
	Enriched string `json:"enriched" yaml:"enriched" mapstructure:"enriched" validate:"required"`

	// Shortlist is the re-extraction shortlist. It is only written when at
	// least one record is shortlisted.
	Shortlist string `json:"shortlist" yaml:"shortlist" mapstructure:"shortlist" validate:"required"`
}

// CurateConfig holds settings for the curate stage.
type CurateConfig struct {
	Paths PathsConfig `json:"paths" yaml:"paths" mapstructure:"paths"`

	// RulesFile optionally replaces the built-in rule tables (YAML).
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty" mapstructure:"rules_file"`

	// Workers bounds concurrent record enrichment (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=64"`
}

// AuditConfig holds settings for the coverage audit.
type AuditConfig struct {
	// EnrichedPath is the table to audit.
	EnrichedPath string `json:"enriched_path" yaml:"enriched_path" mapstructure:"enriched_path" validate:"required"`
}

// CatalogConfig holds settings for the study catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db" yaml:"db" mapstructure:"db" validate:"required"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=0"`
}

// DefaultCurateConfig returns the configuration used when no config file or
// flags override it.
func DefaultCurateConfig() CurateConfig {
	return CurateConfig{
		Paths: PathsConfig{
			Input:     DefaultInputPath,
			Cleaned:   DefaultCleanedPath,
			Enriched:  DefaultEnrichedPath,
			Shortlist: DefaultShortlistPath,
		},
		Workers: 1,
	}
}
