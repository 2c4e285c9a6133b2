package reporter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"statusClass":  statusClass,
		"scenarioHref": scenarioHref,
	}).ParseFS(templateFS, "templates/*.gohtml"),
)

const toolTitle = "SDET Report Tool"

// pageContext is the data handed to every page template. Dates derive
// from the report's injected generation time, never from the wall clock,
// so reruns over identical inputs render identical bytes.
type pageContext struct {
	PageTitle   string
	HeaderTitle string
	ReportDate  string
	Copyright   string
	Tool        string
	ToolVersion string

	Report *models.Report

	// Scenario pages only.
	TestName   string
	PlatformID string
	Run        *models.PlatformRun
}

func newPageContext(report *models.Report) pageContext {
	return pageContext{
		PageTitle:   "SDET Summary Test Report Details",
		HeaderTitle: "SDET Summary Test Report",
		ReportDate:  report.GeneratedAt.Format("2006-01-02"),
		Copyright: fmt.Sprintf(
			"Copyright %d PDC. Presence of a copyright notice is not an acknowledgement of publication.",
			report.GeneratedAt.Year(),
		),
		Tool:        strings.ToUpper(toolTitle),
		ToolVersion: report.Version,
		Report:      report,
	}
}

func writeSummaryPage(report *models.Report, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := renderPage("summary.gohtml", newPageContext(report), cfg)
	if err != nil {
		return err
	}

	return writePage(filepath.Join(cfg.OutputDir, SummaryPageName), data)
}

func writeDetailedPage(report *models.Report, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := newPageContext(report)
	ctx.PageTitle = "SDET Detailed Test Report"
	ctx.HeaderTitle = "SDET Detailed Test Report"

	data, err := renderPage("detailed.gohtml", ctx, cfg)
	if err != nil {
		return err
	}

	return writePage(filepath.Join(cfg.OutputDir, DetailedPageName), data)
}

// writeScenarioPages renders one page per test/platform pair under
// tests_scenario_data/. The directory content is cleared between runs;
// the directory itself is kept.
func writeScenarioPages(report *models.Report, cfg *config.Config) error {
	dir := filepath.Join(cfg.OutputDir, ScenarioDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}
	if err := clearDir(dir); err != nil {
		return fmt.Errorf("failed to clear scenario directory: %w", err)
	}

	for _, test := range report.AllTests() {
		for _, run := range test.Platforms {
			ctx := newPageContext(report)
			ctx.PageTitle = fmt.Sprintf("%s Scenario Report", test.Name)
			ctx.HeaderTitle = fmt.Sprintf("%s Summary Test Report", test.Name)
			ctx.TestName = test.Name
			ctx.PlatformID = run.PlatformID
			ctx.Run = run

			data, err := renderPage("scenario.gohtml", ctx, cfg)
			if err != nil {
				return err
			}

			name := scenarioFileName(test.Name, run.PlatformID)
			if err := writePage(filepath.Join(dir, name), data); err != nil {
				return err
			}
		}
	}

	return nil
}

func renderPage(templateName string, ctx pageContext, cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, templateName, ctx); err != nil {
		return nil, fmt.Errorf("failed to render template %q: %w", templateName, err)
	}

	if cfg.Minify {
		minified, err := minifyHTML(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to minify %q: %w", templateName, err)
		}
		return minified, nil
	}

	return buf.Bytes(), nil
}

func writePage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	slog.Debug("page written", slog.String("path", path))
	return nil
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// scenarioHref is the summary-page link target for one test/platform
// scenario page, relative to the summary page itself.
func scenarioHref(testName, platformID string) string {
	return ScenarioDirName + "/" + scenarioFileName(testName, platformID)
}

// scenarioFileName builds "<test>_<platform>.html" from lowercased,
// filesystem-safe components.
func scenarioFileName(testName, platformID string) string {
	return sanitizeName(testName) + "_" + sanitizeName(platformID) + ".html"
}

func sanitizeName(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func statusClass(status string) string {
	if status == models.StatusFailed {
		return "failed"
	}
	return "ok"
}
