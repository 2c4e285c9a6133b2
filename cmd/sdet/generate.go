package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdc-tools/sdet/internal/analyzer"
	"github.com/pdc-tools/sdet/internal/baseline"
	"github.com/pdc-tools/sdet/internal/collector"
	"github.com/pdc-tools/sdet/internal/history"
	"github.com/pdc-tools/sdet/internal/logging"
	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/internal/reporter"
	"github.com/pdc-tools/sdet/pkg/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Report generation runs on the
// root itself so the documented flat invocation works:
//
//	sdet --product_name=X --test_suites_dir=TS --report_type=1
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "sdet",
		Short: "Test-suite HTML report generator",
		Long: `sdet reads per-platform test-suite result files for a product,
aggregates test outcomes across platforms, and renders HTML reports.

Three report types are available:
  1  one summary page with a test/platform status matrix
  2  the summary page plus one scenario page per test and platform
  3  a single self-contained detailed page`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cfg)
		},
	}

	// Flag names follow the documented CLI surface of the original tool.
	// The required inputs are validated in resolveConfig rather than via
	// cobra's required-flag marks so the config file and SDET_* environment
	// layers can also satisfy them.
	cmd.Flags().StringVar(&cfg.ProductName, "product_name", "", "Name of the product (required)")
	cmd.Flags().StringVar(&cfg.TestSuitesDir, "test_suites_dir", "", "Directory holding test-suite result files (required)")
	cmd.Flags().IntVar(&cfg.ReportType, "report_type", cfg.ReportType, "Type of report (1, 2 or 3)")
	cmd.Flags().StringVar(&cfg.OutputDir, "path_to_output_dir", cfg.OutputDir, "Output directory for generated reports")

	cmd.Flags().BoolVar(&cfg.Minify, "minify", cfg.Minify, "Minify generated HTML")
	cmd.Flags().StringSliceVar(&cfg.ExcludeTests, "exclude-test", nil, "Test name patterns to exclude (repeatable)")
	cmd.Flags().StringSliceVar(&cfg.ExcludePlatforms, "exclude-platform", nil, "Platform id patterns to exclude (repeatable)")

	cmd.Flags().BoolVar(&cfg.FailOnFailed, "fail-on-failed", false, "Exit non-zero when new test failures are detected")
	cmd.Flags().StringVar(&cfg.BaselinePath, "baseline", "", "Known-failures baseline file")
	cmd.Flags().BoolVar(&cfg.UpdateBaseline, "update-baseline", false, "Record current failures into the baseline file")

	cmd.Flags().StringVar(&cfg.HistoryDB, "history-db", "", "SQLite run history file (default: <output dir>/"+config.HistoryFileName+")")
	cmd.Flags().BoolVar(&cfg.NoHistory, "no-history", false, "Skip recording the run in the history database")

	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Dry run mode (don't write output)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	cmd.Flags().BoolVar(&cfg.Verbose, "debug", false, "Alias kept for compatibility; same as --verbose")

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.AddCommand(NewServeCmd(cfg))
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// resolveConfig layers configuration sources under the flags:
// defaults < .sdet.yaml < SDET_* environment < explicit flags.
func resolveConfig(cmd *cobra.Command, cfg *config.Config) error {
	fileCfg, path, err := config.AutoLoadFile()
	if err != nil {
		return err
	}
	if fileCfg != nil {
		slog.Debug("loaded config file", slog.String("path", path))
		applyFileConfig(cmd, cfg, fileCfg)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	envCfg, err := config.LoadEnv(ctx)
	if err != nil {
		return err
	}
	applyEnvConfig(cmd, cfg, envCfg)

	if cfg.Verbose {
		verbose = true
		logging.Init(true)
	}

	cfg.Normalize()
	return cfg.Validate()
}

func applyFileConfig(cmd *cobra.Command, cfg *config.Config, fc *config.FileConfig) {
	flags := cmd.Flags()

	if fc.ProductName != "" && !flags.Changed("product_name") {
		cfg.ProductName = fc.ProductName
	}
	if fc.TestSuitesDir != "" && !flags.Changed("test_suites_dir") {
		cfg.TestSuitesDir = fc.TestSuitesDir
	}
	if fc.ReportType != nil && !flags.Changed("report_type") {
		cfg.ReportType = *fc.ReportType
	}
	if dir := fc.OutputDirValue(); dir != "" && !flags.Changed("path_to_output_dir") {
		cfg.OutputDir = dir
	}
	if fc.Minify != nil && !flags.Changed("minify") {
		cfg.Minify = *fc.Minify
	}
	if fc.HistoryDB != "" && !flags.Changed("history-db") {
		cfg.HistoryDB = fc.HistoryDB
	}
	if fc.BaselinePath != "" && !flags.Changed("baseline") {
		cfg.BaselinePath = fc.BaselinePath
	}
	if len(fc.ExcludeTests) > 0 && !flags.Changed("exclude-test") {
		cfg.ExcludeTests = fc.ExcludeTests
	}
	if len(fc.ExcludePlatforms) > 0 && !flags.Changed("exclude-platform") {
		cfg.ExcludePlatforms = fc.ExcludePlatforms
	}
}

func applyEnvConfig(cmd *cobra.Command, cfg *config.Config, env *config.EnvOverrides) {
	if env == nil {
		return
	}
	flags := cmd.Flags()

	// Flags always win over the environment.
	if flags.Changed("product_name") {
		env.ProductName = nil
	}
	if flags.Changed("test_suites_dir") {
		env.TestSuitesDir = nil
	}
	if flags.Changed("report_type") {
		env.ReportType = nil
	}
	if flags.Changed("path_to_output_dir") {
		env.OutputDir = nil
	}
	if flags.Changed("minify") {
		env.Minify = nil
	}
	if flags.Changed("history-db") {
		env.HistoryDB = nil
	}
	if flags.Changed("baseline") {
		env.BaselinePath = nil
	}

	env.Apply(cfg)
}

// runGenerate executes the collect → aggregate → render pipeline.
func runGenerate(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	if isFirstRun {
		fmt.Println("👋 Looks like the first sdet run on this machine; reports land in", cfg.OutputDir)
	}

	// 1. Collect result artifacts
	fmt.Println("📂 Collecting test results...")
	suites, err := collector.New(cfg).Collect(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Collected %d result files\n", len(suites))

	// 2. Aggregate across platforms
	fmt.Println("🧮 Aggregating test outcomes...")
	an := analyzer.New(cfg)
	if err := an.Analyze(suites); err != nil {
		return err
	}
	report := an.BuildReport(version, time.Now().UTC())
	fmt.Printf("✓ Aggregated %d tests across %d platforms (%d failed)\n",
		report.Totals.Tests, len(report.PlatformIDs), report.Totals.FailedTests)

	// 3. Compare against the known-failures baseline
	baselinePath := cfg.BaselinePath
	if baselinePath == "" && (cfg.FailOnFailed || cfg.UpdateBaseline) {
		baselinePath = baseline.DefaultPath
	}

	var known baseline.Set
	if baselinePath != "" {
		known, err = baseline.Load(baselinePath)
		if err != nil {
			return err
		}
	}
	newFailures := baseline.CountNewFailures(report, known)

	// 4. Render output
	if cfg.DryRun {
		fmt.Println("🏃 Dry run mode - skipping output")
	} else {
		fmt.Println("📝 Writing report...")
		if err := reporter.New(cfg).Generate(report); err != nil {
			return err
		}
		fmt.Printf("✓ Report written to: %s\n", cfg.OutputDir)

		if !cfg.NoHistory {
			if err := recordRun(ctx, cfg, report); err != nil {
				return err
			}
		}
	}

	if err := reporter.WriteText(report, cfg); err != nil {
		return err
	}

	// 5. Persist the updated baseline
	if cfg.UpdateBaseline && !cfg.DryRun {
		if known == nil {
			known = baseline.Set{}
		}
		baseline.AddAll(known, baseline.FailureFingerprints(report))
		if err := baseline.Save(baselinePath, known); err != nil {
			return err
		}
		fmt.Printf("✓ Baseline updated: %s\n", baselinePath)
	}

	duration := time.Since(startTime)
	fmt.Printf("\n✅ Report complete in %s!\n", duration.Round(time.Millisecond))
	if !cfg.DryRun {
		fmt.Printf("\n📊 View report:\n")
		fmt.Printf("   sdet serve %s\n", cfg.OutputDir)
	}

	if cfg.FailOnFailed && newFailures > 0 {
		return &FailuresError{Count: newFailures}
	}

	return nil
}

func recordRun(ctx context.Context, cfg *config.Config, report *models.Report) error {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close history store", slog.String("error", err.Error()))
		}
	}()

	return store.RecordRun(ctx, history.Run{
		Product:       report.Product,
		ReportType:    report.ReportType,
		ExecutedTests: report.Totals.Tests,
		FailedTests:   report.Totals.FailedTests,
		PlatformIDs:   report.PlatformIDs,
		RunStatus:     report.Status(),
		GeneratedAt:   report.GeneratedAt,
	})
}
