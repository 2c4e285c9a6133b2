package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

const (
	textANSIReset = "\x1b[0m"
	textANSIBold  = "\x1b[1m"
	textANSIRed   = "\x1b[91m"
	textANSIGreen = "\x1b[92m"
)

// WriteText prints a human-readable run summary to stdout.
func WriteText(report *models.Report, cfg *config.Config) error {
	return writeText(report, cfg, os.Stdout)
}

func writeText(report *models.Report, cfg *config.Config, out io.Writer) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if out == nil {
		return fmt.Errorf("writer is nil")
	}

	rendered := renderTextReport(report, supportsANSI(out))
	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("failed to write text summary: %w", err)
	}
	return nil
}

func renderTextReport(report *models.Report, useANSI bool) string {
	var b strings.Builder

	writeTextSectionHeader(&b, "SDET Summary Test Report", useANSI)
	fmt.Fprintf(&b, "Product: %s\n", report.Product)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Report type: %d\n", report.ReportType)
	fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(report.PlatformIDs, ", "))
	b.WriteString("\n")

	writeTextSectionHeader(&b, "Totals", useANSI)
	fmt.Fprintf(&b, "Tests: %d\n", report.Totals.Tests)
	fmt.Fprintf(&b, "Failed tests: %d\n", report.Totals.FailedTests)
	fmt.Fprintf(&b, "Executed cases: %d\n", report.Totals.ExecutedCases)
	fmt.Fprintf(&b, "Failed cases: %d\n", report.Totals.FailedCases)
	b.WriteString("\n")

	if len(report.Failed) > 0 {
		writeTextSectionHeader(&b, "Failed Tests", useANSI)
		for _, test := range report.Failed {
			label := test.Name
			if useANSI {
				label = textANSIBold + textANSIRed + label + textANSIReset
			}
			fmt.Fprintf(&b, "- %s\n", label)
			for _, run := range test.Platforms {
				if run.Status != models.StatusFailed {
					continue
				}
				fmt.Fprintf(&b, "    %s: %d/%d failed\n", run.PlatformID, run.FailedTests, run.TotalTests)
			}
		}
		b.WriteString("\n")
	}

	status := report.Status()
	line := fmt.Sprintf("Run status: %s\n", status)
	if useANSI {
		color := textANSIGreen
		if status == models.StatusFailed {
			color = textANSIRed
		}
		line = fmt.Sprintf("Run status: %s%s%s\n", textANSIBold+color, status, textANSIReset)
	}
	b.WriteString(line)

	return b.String()
}

func writeTextSectionHeader(b *strings.Builder, title string, useANSI bool) {
	header := title
	if useANSI {
		header = textANSIBold + title + textANSIReset
	}
	fmt.Fprintf(b, "%s\n", header)
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", len(title)))
}

func supportsANSI(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
