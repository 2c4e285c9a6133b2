package reporter

import (
	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

// File names of the generated pages.
const (
	SummaryPageName  = "SDET_SummaryTestReport.html"
	DetailedPageName = "SDET_DetailedTestReport.html"
	ScenarioDirName  = "tests_scenario_data"
	JSONReportName   = "report.json"
)

// Reporter interface for generating reports
type Reporter interface {
	Generate(report *models.Report) error
}

// reporter implements the Reporter interface
type reporter struct {
	config *config.Config
}

// New creates a new reporter instance
func New(cfg *config.Config) Reporter {
	return &reporter{
		config: cfg,
	}
}

// Generate renders the HTML pages for the configured report type and
// writes the JSON mirror next to them. Single pass, no retries.
func (r *reporter) Generate(report *models.Report) error {
	switch r.config.ReportType {
	case config.ReportTypeScenario:
		if err := writeSummaryPage(report, r.config); err != nil {
			return err
		}
		if err := writeScenarioPages(report, r.config); err != nil {
			return err
		}
	case config.ReportTypeDetailed:
		if err := writeDetailedPage(report, r.config); err != nil {
			return err
		}
	default:
		if err := writeSummaryPage(report, r.config); err != nil {
			return err
		}
	}

	return WriteJSON(report, r.config)
}
