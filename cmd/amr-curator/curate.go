// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/amr-curator/internal/curate"
	"github.com/pdiddy/amr-curator/internal/validation"
	"github.com/pdiddy/amr-curator/pkg/types"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Deduplicate and enrich the extraction table",
	Long: `Curate loads the raw extraction table, removes duplicate studies (same
Author, Year of publication and Title of paper; the first row wins), enriches
every study with derived fields and writes the enriched table. Studies lacking
any outcome data are written to the re-extraction shortlist.

Paths default to the data/ layout and can be set in amr-curator.yaml, through
AMR_CURATOR_* environment variables, or with flags.`,
	RunE: runCurate,
}

func runCurate(cmd *cobra.Command, args []string) error {
	cfg := curateConfig(cmd)
	if err := validation.New().Validate(cfg); err != nil {
		return err
	}

	sum, err := curate.Run(cmd.Context(), cfg, os.Stdout, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nread: %d, duplicates: %d, written: %d, shortlisted: %d\n",
		sum.Total(), sum.Duplicates, sum.Written, sum.Shortlisted)
	return nil
}

func curateConfig(cmd *cobra.Command) types.CurateConfig {
	return types.CurateConfig{
		Paths: types.PathsConfig{
			Input:     stringSetting(cmd, "input", "paths.input"),
			Cleaned:   stringSetting(cmd, "cleaned", "paths.cleaned"),
			Enriched:  stringSetting(cmd, "enriched", "paths.enriched"),
			Shortlist: stringSetting(cmd, "shortlist", "paths.shortlist"),
		},
		RulesFile: viper.GetString("rules_file"),
		Workers:   intSetting(cmd, "workers", "workers"),
	}
}

func init() {
	curateCmd.Flags().String("input", "", "raw extraction table (default: "+types.DefaultInputPath+")")
	curateCmd.Flags().String("cleaned", "", "cleaned copy of the enriched table; empty string disables (default: "+types.DefaultCleanedPath+")")
	curateCmd.Flags().String("enriched", "", "enriched table (default: "+types.DefaultEnrichedPath+")")
	curateCmd.Flags().String("shortlist", "", "re-extraction shortlist (default: "+types.DefaultShortlistPath+")")
	curateCmd.Flags().Int("workers", 1, "concurrent enrichment workers")

	rootCmd.AddCommand(curateCmd)
}
