package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Report types selectable on the command line.
const (
	ReportTypeSummary  = 1 // one summary page
	ReportTypeScenario = 2 // summary page plus per-test scenario pages
	ReportTypeDetailed = 3 // single self-contained detail page
)

// HistoryFileName is the default SQLite file name under the output directory.
const HistoryFileName = "sdet_history.db"

// Config holds all runtime configuration
type Config struct {
	// Input settings
	ProductName   string
	TestSuitesDir string

	// Report settings
	ReportType int
	OutputDir  string
	Minify     bool

	// Failure gating
	FailOnFailed   bool
	BaselinePath   string
	UpdateBaseline bool

	// History settings
	HistoryDB string
	NoHistory bool

	// Filtering
	ExcludeTests     []string
	ExcludePlatforms []string

	// Server settings
	ServerPort int

	// Operational flags
	Verbose bool
	DryRun  bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ReportType: ReportTypeSummary,
		OutputDir:  "./output",
		Minify:     false,
		ServerPort: 8080,
	}
}

// Validate checks the required inputs before a generation run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProductName) == "" {
		return fmt.Errorf("--product_name is required")
	}
	if strings.TrimSpace(c.TestSuitesDir) == "" {
		return fmt.Errorf("--test_suites_dir is required")
	}
	if c.ReportType < ReportTypeSummary || c.ReportType > ReportTypeDetailed {
		return fmt.Errorf("invalid --report_type value: %d (must be 1, 2 or 3)", c.ReportType)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("--path_to_output_dir must not be empty")
	}
	return nil
}

// HistoryPath returns the SQLite file to record runs into.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.HistoryDB) != "" {
		return c.HistoryDB
	}
	return filepath.Join(c.OutputDir, HistoryFileName)
}
