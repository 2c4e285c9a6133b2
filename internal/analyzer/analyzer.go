package analyzer

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

// Analyzer aggregates per-platform suite results into per-test results.
type Analyzer struct {
	config      *config.Config
	tests       map[string]*models.TestResult
	platformIDs []string
}

// New creates a new analyzer instance
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		config: cfg,
		tests:  make(map[string]*models.TestResult),
	}
}

// Analyze folds all suite results into the test map. A test is FAILED as
// soon as any of its platform runs reports a failed case.
func (a *Analyzer) Analyze(suites []*models.SuiteResult) error {
	if len(suites) == 0 {
		return fmt.Errorf("no suite results to analyze")
	}

	for _, suite := range suites {
		if !contains(a.platformIDs, suite.PlatformID) {
			a.platformIDs = append(a.platformIDs, suite.PlatformID)
		}

		for _, record := range suite.Records {
			name := path.Base(record.TestName)
			if name == "" || name == "." {
				slog.Warn("skipping record without test name", slog.String("source", suite.Source))
				continue
			}
			if a.config.IsTestExcluded(record.TestName) {
				slog.Debug("skipping excluded test", slog.String("test", record.TestName))
				continue
			}

			platform := record.PlatformID
			if platform == "" {
				platform = suite.PlatformID
			}

			run := buildPlatformRun(platform, record)

			test, ok := a.tests[name]
			if !ok {
				test = &models.TestResult{Name: name, Status: run.Status}
				a.tests[name] = test
			}
			if run.Status == models.StatusFailed {
				test.Status = models.StatusFailed
			}

			if existing := test.Platform(platform); existing != nil {
				// Later artifacts for the same test/platform pair win,
				// matching last-write order of the suite runner.
				*existing = *run
				continue
			}
			test.Platforms = append(test.Platforms, run)
		}
	}

	if len(a.tests) == 0 {
		return fmt.Errorf("no test records survived aggregation")
	}

	slog.Debug("aggregation complete",
		slog.Int("tests", len(a.tests)),
		slog.Int("platforms", len(a.platformIDs)),
	)

	return nil
}

// Tests returns the aggregated test results keyed by test name.
func (a *Analyzer) Tests() map[string]*models.TestResult {
	return a.tests
}

// PlatformIDs returns platform ids in collection order.
func (a *Analyzer) PlatformIDs() []string {
	return a.platformIDs
}

// BuildReport assembles the final report. Failed and successful tests are
// each alphabetically sorted; generatedAt is injected so identical inputs
// render identical output.
func (a *Analyzer) BuildReport(version string, generatedAt time.Time) *models.Report {
	report := &models.Report{
		Tool:        "sdet",
		Version:     version,
		Product:     a.config.ProductName,
		ReportType:  a.config.ReportType,
		GeneratedAt: generatedAt,
		PlatformIDs: a.platformIDs,
	}

	names := make([]string, 0, len(a.tests))
	for name := range a.tests {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		test := a.tests[name]
		sort.Slice(test.Platforms, func(i, j int) bool {
			return test.Platforms[i].PlatformID < test.Platforms[j].PlatformID
		})

		report.Totals.Tests++
		for _, run := range test.Platforms {
			report.Totals.ExecutedCases += run.TotalTests
			report.Totals.FailedCases += run.FailedTests
		}

		if test.Status == models.StatusFailed {
			report.Totals.FailedTests++
			report.Failed = append(report.Failed, test)
		} else {
			report.Successful = append(report.Successful, test)
		}
	}

	return report
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func buildPlatformRun(platform string, record models.TestRecord) *models.PlatformRun {
	status := models.StatusOK
	if record.TestsFailed > 0 {
		status = models.StatusFailed
	}

	total := int(record.TestCases)
	failed := int(record.TestsFailed)
	passed := total - failed
	if passed < 0 {
		passed = 0
	}

	return &models.PlatformRun{
		PlatformID:  platform,
		Status:      status,
		TotalTests:  total,
		PassedTests: passed,
		FailedTests: failed,
		Duration:    time.Duration(record.DurationMS) * time.Millisecond,
		DurationMS:  record.DurationMS,
		Scenarios:   ParseTAP(record.TAP),
	}
}
