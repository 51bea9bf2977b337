// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the amr-curator CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/amr-curator/internal/classify"
	"github.com/pdiddy/amr-curator/internal/rules"
	"github.com/pdiddy/amr-curator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and shared by all subcommands.
var logger = zap.NewNop()

// rootCmd is the base command for the amr-curator CLI.
var rootCmd = &cobra.Command{
	Use:   "amr-curator",
	Short: "Curate AMR surgical-site-infection study extraction tables",
	Long: `amr-curator turns a manually extracted table of antimicrobial resistance /
surgical site infection studies into a deduplicated, enriched dataset with
MECE study-design categories, thematic tags and parsed fields, and lists the
studies whose outcome data must be re-extracted from the source papers.

Subcommands: curate runs the pipeline, audit reports field coverage, rules
shows the active classification rules, and catalog loads the enriched table
into a queryable SQLite study catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(viper.GetString("log_level"), verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./amr-curator.yaml or ~/.config/amr-curator/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info)")
	rootCmd.PersistentFlags().String("rules", "", "YAML rule file replacing built-in rule tables")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("amr-curator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "amr-curator"))
		}
	}

	viper.SetEnvPrefix("AMR_CURATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if f := rootCmd.PersistentFlags().Lookup("log-level"); f != nil && f.Changed {
		viper.Set("log_level", f.Value.String())
	}
	if f := rootCmd.PersistentFlags().Lookup("rules"); f != nil && f.Changed {
		viper.Set("rules_file", f.Value.String())
	}
}

func setDefaults() {
	d := types.DefaultCurateConfig()
	viper.SetDefault("paths.input", d.Paths.Input)
	viper.SetDefault("paths.cleaned", d.Paths.Cleaned)
	viper.SetDefault("paths.enriched", d.Paths.Enriched)
	viper.SetDefault("paths.shortlist", d.Paths.Shortlist)
	viper.SetDefault("workers", d.Workers)
	viper.SetDefault("rules_file", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("catalog.db", types.DefaultCatalogPath)
	viper.SetDefault("catalog.max_results", 20)
}

// newLogger builds a console logger on stderr. verbose forces debug level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(lvl)
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return l, nil
}

// stringSetting returns the flag value when it was set on the command line,
// otherwise the viper setting for key.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

// intSetting is stringSetting for integers.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

// loadClassifier returns a classifier over the configured rule file, or the
// built-in rules when none is set.
func loadClassifier() (*classify.Classifier, error) {
	path := viper.GetString("rules_file")
	if path == "" {
		return classify.New(nil), nil
	}
	set, err := rules.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded rules", zap.String("path", path))
	return classify.New(set), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
