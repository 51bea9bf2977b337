// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/amr-curator/internal/audit"
	"github.com/pdiddy/amr-curator/internal/records"
	"github.com/pdiddy/amr-curator/internal/validation"
	"github.com/pdiddy/amr-curator/pkg/types"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report derivable-field coverage of the enriched table",
	Long: `Audit reads the enriched table and reports, for every field derived from
existing columns, the share of studies with informative source data. It also
lists outcome fields that need re-extraction from the source papers together
with existing columns that may hold related data. Nothing is written.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := types.AuditConfig{EnrichedPath: stringSetting(cmd, "enriched", "paths.enriched")}
	if err := validation.New().Validate(cfg); err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if !jsonOutput {
		rep, err := audit.Run(cfg.EnrichedPath, os.Stdout)
		if err != nil {
			return err
		}
		logger.Debug("audit complete", zap.String("path", cfg.EnrichedPath), zap.Int("records", rep.Records))
		return nil
	}

	t, err := records.Load(cfg.EnrichedPath)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(audit.New().Audit(t))
}

func init() {
	auditCmd.Flags().String("enriched", "", "enriched table to audit (default: "+types.DefaultEnrichedPath+")")
	auditCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(auditCmd)
}
