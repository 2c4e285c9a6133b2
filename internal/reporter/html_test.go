package reporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

func reportFixture() *models.Report {
	return &models.Report{
		Tool:        "sdet",
		Version:     "0.1.0",
		Product:     "X",
		ReportType:  config.ReportTypeSummary,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		PlatformIDs: []string{"board_a", "board_b"},
		Failed: []*models.TestResult{
			{
				Name:   "boot",
				Status: models.StatusFailed,
				Platforms: []*models.PlatformRun{
					{
						PlatformID:  "board_a",
						Status:      models.StatusFailed,
						TotalTests:  2,
						PassedTests: 1,
						FailedTests: 1,
						Scenarios: models.ScenarioSet{
							OK:    []string{"ok 1 - kernel"},
							NotOK: []string{"not ok 2 - modules"},
						},
					},
				},
			},
		},
		Successful: []*models.TestResult{
			{
				Name:   "login",
				Status: models.StatusOK,
				Platforms: []*models.PlatformRun{
					{
						PlatformID:  "board_a",
						Status:      models.StatusOK,
						TotalTests:  3,
						PassedTests: 3,
						Scenarios: models.ScenarioSet{
							OK:      []string{"ok 1 - valid", "ok 2 - invalid"},
							Skipped: []string{"ok 3 - sso # SKIP no idp"},
						},
					},
					{
						PlatformID:  "board_b",
						Status:      models.StatusOK,
						TotalTests:  3,
						PassedTests: 3,
					},
				},
			},
		},
		Totals: models.Totals{Tests: 2, FailedTests: 1, ExecutedCases: 8, FailedCases: 1},
	}
}

func TestGenerateSummaryReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeSummary

	report := reportFixture()
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	page := readPage(t, filepath.Join(cfg.OutputDir, SummaryPageName))
	assertContains(t, page, `id="summary-report"`)
	assertContains(t, page, "SDET Summary Test Report")
	assertContains(t, page, "boot")
	assertContains(t, page, "login")
	assertContains(t, page, "board_a")
	assertContains(t, page, "FAILED")
	assertContains(t, page, "Copyright 2026 PDC")

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, ScenarioDirName)); !os.IsNotExist(err) {
		t.Fatal("summary report must not create the scenario directory")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, JSONReportName)); err != nil {
		t.Fatalf("expected report.json next to the page: %v", err)
	}
}

func TestGenerateScenarioReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeScenario

	report := reportFixture()
	report.ReportType = config.ReportTypeScenario
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Summary page is still produced for type 2.
	readPage(t, filepath.Join(cfg.OutputDir, SummaryPageName))

	scenarioDir := filepath.Join(cfg.OutputDir, ScenarioDirName)
	entries, err := os.ReadDir(scenarioDir)
	if err != nil {
		t.Fatalf("failed to read scenario dir: %v", err)
	}
	// boot on board_a plus login on board_a and board_b.
	if len(entries) != 3 {
		t.Fatalf("expected 3 scenario pages, got %d", len(entries))
	}

	page := readPage(t, filepath.Join(scenarioDir, "boot_board_a.html"))
	assertContains(t, page, `id="scenario-report"`)
	assertContains(t, page, "boot Summary Test Report")
	assertContains(t, page, "not ok 2 - modules")
	assertContains(t, page, "Failed: 1")
}

func TestSummaryLinksScenarioPagesForScenarioReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeScenario

	report := reportFixture()
	report.ReportType = config.ReportTypeScenario
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	page := readPage(t, filepath.Join(cfg.OutputDir, SummaryPageName))
	assertContains(t, page, `href="tests_scenario_data/boot_board_a.html"`)
	assertContains(t, page, `href="tests_scenario_data/login_board_b.html"`)

	// Every linked page must exist on disk.
	for _, name := range []string{"boot_board_a.html", "login_board_a.html", "login_board_b.html"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, ScenarioDirName, name)); err != nil {
			t.Fatalf("linked scenario page missing: %v", err)
		}
	}
}

func TestSummaryOmitsScenarioLinksForSummaryReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeSummary

	report := reportFixture()
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	page := readPage(t, filepath.Join(cfg.OutputDir, SummaryPageName))
	if strings.Contains(page, ScenarioDirName) {
		t.Fatal("summary-only report must not link to scenario pages")
	}
}

func TestGenerateScenarioReportClearsStalePages(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeScenario

	scenarioDir := filepath.Join(cfg.OutputDir, ScenarioDirName)
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		t.Fatalf("failed to pre-create scenario dir: %v", err)
	}
	stale := filepath.Join(scenarioDir, "stale_page.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("failed to write stale page: %v", err)
	}

	report := reportFixture()
	report.ReportType = config.ReportTypeScenario
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale scenario page to be removed")
	}
}

func TestGenerateDetailedReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ReportType = config.ReportTypeDetailed

	report := reportFixture()
	report.ReportType = config.ReportTypeDetailed
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	page := readPage(t, filepath.Join(cfg.OutputDir, DetailedPageName))
	assertContains(t, page, `id="detailed-report"`)
	assertContains(t, page, "SDET Detailed Test Report")
	assertContains(t, page, "not ok 2 - modules")
	assertContains(t, page, "ok 3 - sso # SKIP no idp")

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, SummaryPageName)); !os.IsNotExist(err) {
		t.Fatal("detailed report must not write the summary page")
	}
}

func TestReportTypesAreDistinguishable(t *testing.T) {
	markers := map[int]string{
		config.ReportTypeSummary:  `id="summary-report"`,
		config.ReportTypeScenario: `id="scenario-report"`,
		config.ReportTypeDetailed: `id="detailed-report"`,
	}
	pages := map[int]string{}

	for reportType := range markers {
		cfg := config.DefaultConfig()
		cfg.OutputDir = t.TempDir()
		cfg.ReportType = reportType

		report := reportFixture()
		report.ReportType = reportType
		if err := New(cfg).Generate(report); err != nil {
			t.Fatalf("Generate type %d failed: %v", reportType, err)
		}

		var path string
		switch reportType {
		case config.ReportTypeDetailed:
			path = filepath.Join(cfg.OutputDir, DetailedPageName)
		case config.ReportTypeScenario:
			path = filepath.Join(cfg.OutputDir, ScenarioDirName, "boot_board_a.html")
		default:
			path = filepath.Join(cfg.OutputDir, SummaryPageName)
		}
		pages[reportType] = readPage(t, path)
	}

	for reportType, marker := range markers {
		if !strings.Contains(pages[reportType], marker) {
			t.Fatalf("type %d page missing marker %s", reportType, marker)
		}
		for other, otherMarker := range markers {
			if other != reportType && strings.Contains(pages[reportType], otherMarker) {
				t.Fatalf("type %d page carries marker of type %d", reportType, other)
			}
		}
	}
}

func TestGenerateIsByteIdenticalForFixedTime(t *testing.T) {
	report := reportFixture()

	first := generateSummaryBytes(t, report)
	second := generateSummaryBytes(t, report)

	if !bytes.Equal(first, second) {
		t.Fatal("expected byte-identical summary pages for identical input")
	}
}

func TestMinifiedOutputIsSmallerAndValid(t *testing.T) {
	report := reportFixture()

	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	plain, err := renderPage("summary.gohtml", newPageContext(report), cfg)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	cfg.Minify = true
	minified, err := renderPage("summary.gohtml", newPageContext(report), cfg)
	if err != nil {
		t.Fatalf("minified render failed: %v", err)
	}

	if len(minified) >= len(plain) {
		t.Fatalf("expected minified page to be smaller: %d vs %d", len(minified), len(plain))
	}
	if !strings.Contains(string(minified), "summary-report") {
		t.Fatal("minified page lost its content")
	}
}

func TestScenarioFileNameSanitized(t *testing.T) {
	got := scenarioFileName("Suites/Login Flow", "Board A")
	if got != "suites_login_flow_board_a.html" {
		t.Fatalf("unexpected scenario file name: %s", got)
	}
}

func generateSummaryBytes(t *testing.T, report *models.Report) []byte {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	if err := New(cfg).Generate(report); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, SummaryPageName))
	if err != nil {
		t.Fatalf("failed to read summary page: %v", err)
	}
	return data
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if len(data) == 0 {
		t.Fatalf("page %s is empty", path)
	}
	return string(data)
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}
