package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Test statuses as they appear in reports and the run history.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Count is an integer that some suite runners emit as a JSON string.
type Count int

// UnmarshalJSON accepts both 12 and "12".
func (c *Count) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	if raw == "" || raw == "null" {
		*c = 0
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid count value %q: %w", raw, err)
	}
	*c = Count(value)
	return nil
}

// MarshalJSON keeps counts numeric on the way out regardless of how they
// arrived.
func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// TestRecord is one entry of a result file's data array.
// The sr_* field names are the wire contract of the suite runner output.
type TestRecord struct {
	TestName    string `json:"sr_test_name"`
	PlatformID  string `json:"sr_ts_id"`
	TestCases   Count  `json:"sr_test_cases"`
	TestsFailed Count  `json:"sr_tests_failed"`
	TAP         string `json:"sr_tap"`
	DurationMS  int64  `json:"sr_duration_ms,omitempty"`
}

// SuiteResult is the parsed content of a single result artifact.
// PlatformID is derived from the file name and used as a fallback when
// records do not carry their own sr_ts_id.
type SuiteResult struct {
	PlatformID string
	Source     string
	Records    []TestRecord
}

// ScenarioSet groups TAP scenario lines by outcome.
type ScenarioSet struct {
	OK      []string `json:"ok"`
	NotOK   []string `json:"not_ok"`
	Skipped []string `json:"skipped"`
}

// Empty reports whether no scenario lines were classified.
func (s ScenarioSet) Empty() bool {
	return len(s.OK) == 0 && len(s.NotOK) == 0 && len(s.Skipped) == 0
}

// PlatformRun is one test's outcome on one platform.
type PlatformRun struct {
	PlatformID  string        `json:"platform_id"`
	Status      string        `json:"status"`
	TotalTests  int           `json:"total_tests"`
	PassedTests int           `json:"passed_tests"`
	FailedTests int           `json:"failed_tests"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms,omitempty"`
	Scenarios   ScenarioSet   `json:"scenarios"`
}

// TestResult is one test aggregated across all platforms it ran on.
// Status is FAILED as soon as any platform run failed.
type TestResult struct {
	Name      string         `json:"name"`
	Status    string         `json:"status"`
	Platforms []*PlatformRun `json:"platforms"`
}

// Platform returns the run for the given platform id, or nil.
func (t *TestResult) Platform(id string) *PlatformRun {
	for _, run := range t.Platforms {
		if run.PlatformID == id {
			return run
		}
	}
	return nil
}
