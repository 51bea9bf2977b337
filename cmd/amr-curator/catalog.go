// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/amr-curator/internal/catalog"
	"github.com/pdiddy/amr-curator/internal/validation"
	"github.com/pdiddy/amr-curator/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the study catalog (load, query, tags, export)",
	Long: `Catalog keeps the enriched studies in a local SQLite database so they can
be filtered by design, thematic tag, country or missing outcome data, and
exported as YAML or JSON.`,
}

// --- load subcommand ---

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the enriched table into the catalog",
	Long: `Load reads the enriched table written by curate and stores one catalog
entry per study. Studies already in the catalog are replaced.`,
	RunE: runCatalogLoad,
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	path := stringSetting(cmd, "enriched", "paths.enriched")
	summary, err := store.LoadFile(cmd.Context(), path, os.Stdout)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("inserted", summary.Inserted),
		zap.Int("replaced", summary.Replaced))
	if summary.Failed > 0 {
		return fmt.Errorf("%d stud(ies) failed to load", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the catalog with structured filters",
	Long: `Query lists studies matching every given filter: --design, --dimension,
--tag, --country (substring) and --missing (mortality, readmission,
reoperation, los or economic).`,
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	if opts.IsEmpty() {
		return fmt.Errorf("filter required: provide --design, --dimension, --tag, --country or --missing")
	}

	studies, err := store.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(studies, jsonOutput)
}

func formatQueryOutput(studies []types.Study, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(studies)
	}

	if len(studies) == 0 {
		fmt.Println("No studies found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-20s  %-4s  %-40s  %-16s  %s\n",
		"ID", "Author", "Year", "Title", "Design", "Missing")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, st := range studies {
		fmt.Fprintf(os.Stdout, "%-12s  %-20s  %-4s  %-40s  %-16s  %s\n",
			st.ID, truncate(st.Author, 20), st.Year, truncate(st.Title, 40),
			truncate(string(st.Design), 16), strings.Join(st.Missing, ","))
	}

	fmt.Fprintf(os.Stdout, "\n%d studies\n", len(studies))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- tags subcommand ---

var catalogTagsCmd = &cobra.Command{
	Use:   "tags <dimension>",
	Short: "Count studies per thematic label in a dimension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := types.Dimension(args[0])
		if !d.Valid() {
			return fmt.Errorf("unknown dimension %q", args[0])
		}

		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		counts, err := store.TagCounts(cmd.Context(), d)
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Fprintf(os.Stdout, "%5d  %s\n", c.Studies, c.Label)
		}
		return nil
	},
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or the subset matching the query filters) to
--out, defaulting to studies.yaml or studies.json next to the database.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	if out == "" {
		out = filepath.Join(filepath.Dir(stringSetting(cmd, "db", "catalog.db")), "studies."+format)
	}

	switch format {
	case "yaml":
		err = store.ExportYAML(cmd.Context(), opts, out)
	case "json":
		err = store.ExportJSON(cmd.Context(), opts, out)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", out)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg := types.CatalogConfig{
		DBPath:     stringSetting(cmd, "db", "catalog.db"),
		MaxResults: intSetting(cmd, "max-results", "catalog.max_results"),
	}
	if err := validation.New().Validate(cfg); err != nil {
		return nil, err
	}
	c, err := loadClassifier()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cfg, c)
}

func queryOptsFromFlags(cmd *cobra.Command) catalog.QueryOptions {
	design, _ := cmd.Flags().GetString("design")
	dimension, _ := cmd.Flags().GetString("dimension")
	tag, _ := cmd.Flags().GetString("tag")
	country, _ := cmd.Flags().GetString("country")
	missing, _ := cmd.Flags().GetString("missing")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Design:     types.DesignCategory(design),
		Dimension:  types.Dimension(dimension),
		Tag:        tag,
		Country:    country,
		Missing:    missing,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("design", "", "filter by MECE design category")
	cmd.Flags().String("dimension", "", "filter by tag dimension: drivers, interventions, gaps, policy, economic")
	cmd.Flags().String("tag", "", "filter by thematic label")
	cmd.Flags().String("country", "", "filter by country (substring)")
	cmd.Flags().String("missing", "", "filter by missing outcome: "+strings.Join(catalog.OutcomeKeys(), ", "))
	cmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("db", "", "catalog database (default: "+types.DefaultCatalogPath+")")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	catalogLoadCmd.Flags().String("enriched", "", "enriched table to load (default: "+types.DefaultEnrichedPath+")")

	addFilterFlags(catalogQueryCmd)
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("out", "", "output file")

	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogTagsCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
