package reporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

// WriteJSON writes the aggregated report to report.json next to the
// HTML pages so other tooling can consume the run without scraping HTML.
func WriteJSON(report *models.Report, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	outputPath := filepath.Join(cfg.OutputDir, JSONReportName)
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", JSONReportName, err)
	}

	slog.Debug("json report written", slog.String("path", outputPath))
	return nil
}
