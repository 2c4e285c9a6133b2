package models

import "time"

// Report is the complete aggregated output of one run.
type Report struct {
	Tool        string        `json:"tool"`
	Version     string        `json:"version"`
	Product     string        `json:"product"`
	ReportType  int           `json:"report_type"`
	GeneratedAt time.Time     `json:"generated_at"`
	PlatformIDs []string      `json:"platform_ids"`
	Failed      []*TestResult `json:"failed"`
	Successful  []*TestResult `json:"successful"`
	Totals      Totals        `json:"totals"`
}

// Totals summarizes the run for the history store and console output.
type Totals struct {
	Tests         int `json:"tests"`
	FailedTests   int `json:"failed_tests"`
	ExecutedCases int `json:"executed_cases"`
	FailedCases   int `json:"failed_cases"`
}

// AllTests returns failed tests first, then successful ones. Both groups
// are already alphabetically sorted by the analyzer.
func (r *Report) AllTests() []*TestResult {
	all := make([]*TestResult, 0, len(r.Failed)+len(r.Successful))
	all = append(all, r.Failed...)
	all = append(all, r.Successful...)
	return all
}

// Status is FAILED when any test failed on any platform.
func (r *Report) Status() string {
	if len(r.Failed) > 0 {
		return StatusFailed
	}
	return StatusOK
}
