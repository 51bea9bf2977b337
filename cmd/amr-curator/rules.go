// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/amr-curator/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active classification rules",
	Long: `Rules prints the study-design table and the five thematic tag tables in
evaluation order, with each table's match policy. With --yaml it writes the
tables as a rule file that can be edited and passed back with --rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set := rules.Default()
		if path := viper.GetString("rules_file"); path != "" {
			s, err := rules.Load(path)
			if err != nil {
				return err
			}
			set = s
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			return set.WriteYAML(os.Stdout)
		}
		set.Describe(os.Stdout)
		return nil
	},
}

func init() {
	rulesCmd.Flags().Bool("yaml", false, "write the rules as a YAML rule file")

	rootCmd.AddCommand(rulesCmd)
}
