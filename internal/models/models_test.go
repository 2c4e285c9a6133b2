package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTestRecordUnmarshalCounts(t *testing.T) {
	cases := []struct {
		name       string
		payload    string
		wantCases  int
		wantFailed int
		wantErr    bool
	}{
		{
			name:       "numeric_counts",
			payload:    `{"sr_test_name":"t1","sr_ts_id":"p1","sr_test_cases":10,"sr_tests_failed":2,"sr_tap":""}`,
			wantCases:  10,
			wantFailed: 2,
		},
		{
			name:       "string_counts",
			payload:    `{"sr_test_name":"t1","sr_ts_id":"p1","sr_test_cases":"10","sr_tests_failed":"2","sr_tap":""}`,
			wantCases:  10,
			wantFailed: 2,
		},
		{
			name:    "missing_counts_default_to_zero",
			payload: `{"sr_test_name":"t1","sr_ts_id":"p1","sr_tap":""}`,
		},
		{
			name:    "garbage_count_is_an_error",
			payload: `{"sr_test_name":"t1","sr_test_cases":"lots"}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var record TestRecord
			err := json.Unmarshal([]byte(tc.payload), &record)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected unmarshal error, got record %+v", record)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if int(record.TestCases) != tc.wantCases {
				t.Fatalf("expected %d test cases, got %d", tc.wantCases, record.TestCases)
			}
			if int(record.TestsFailed) != tc.wantFailed {
				t.Fatalf("expected %d failed, got %d", tc.wantFailed, record.TestsFailed)
			}
		})
	}
}

func TestCountMarshalsNumeric(t *testing.T) {
	record := TestRecord{TestName: "t1", TestCases: 7, TestsFailed: 1}
	payload, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(payload), `"sr_test_cases":7`) {
		t.Fatalf("expected numeric sr_test_cases, got %s", payload)
	}
}

func TestReportJSONTags(t *testing.T) {
	report := Report{
		Tool:        "sdet",
		Version:     "0.1.0",
		Product:     "X",
		ReportType:  1,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		PlatformIDs: []string{"p1"},
		Failed:      []*TestResult{},
		Successful:  []*TestResult{},
	}

	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	encoded := string(payload)
	for _, key := range []string{
		`"tool"`, `"version"`, `"product"`, `"report_type"`,
		`"generated_at"`, `"platform_ids"`, `"failed"`, `"successful"`, `"totals"`,
	} {
		if !strings.Contains(encoded, key) {
			t.Fatalf("expected JSON to contain %s, got %s", key, encoded)
		}
	}
}

func TestReportStatusRollup(t *testing.T) {
	report := &Report{
		Successful: []*TestResult{{Name: "a", Status: StatusOK}},
	}
	if got := report.Status(); got != StatusOK {
		t.Fatalf("expected OK, got %s", got)
	}

	report.Failed = append(report.Failed, &TestResult{Name: "b", Status: StatusFailed})
	if got := report.Status(); got != StatusFailed {
		t.Fatalf("expected FAILED, got %s", got)
	}
}

func TestTestResultPlatformLookup(t *testing.T) {
	result := &TestResult{
		Name: "t1",
		Platforms: []*PlatformRun{
			{PlatformID: "p1", Status: StatusOK},
			{PlatformID: "p2", Status: StatusFailed},
		},
	}

	if run := result.Platform("p2"); run == nil || run.Status != StatusFailed {
		t.Fatalf("expected failed run for p2, got %+v", run)
	}
	if run := result.Platform("p9"); run != nil {
		t.Fatalf("expected nil for unknown platform, got %+v", run)
	}
}
