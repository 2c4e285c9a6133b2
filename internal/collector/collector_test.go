package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdc-tools/sdet/pkg/config"
)

func writeResultFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const validSuiteJSON = `{
  "data": [
    {"sr_test_name": "suites/boot", "sr_ts_id": "", "sr_test_cases": 3, "sr_tests_failed": 1,
     "sr_tap": "ok 1 - kernel\nnot ok 2 - modules\nok 3 - userspace # SKIP no display\n"}
  ]
}`

func TestCollectYieldsOneSuitePerFile(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "board_a.json", validSuiteJSON)
	writeResultFile(t, dir, "board_b.json", validSuiteJSON)
	writeResultFile(t, dir, "notes.txt", "not a result artifact")

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir

	suites, err := New(cfg).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(suites))
	}
	if suites[0].PlatformID != "board_a" || suites[1].PlatformID != "board_b" {
		t.Fatalf("expected sorted platform ids, got %s, %s", suites[0].PlatformID, suites[1].PlatformID)
	}
	if len(suites[0].Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(suites[0].Records))
	}
	if suites[0].Records[0].PlatformID != "board_a" {
		t.Fatalf("expected empty sr_ts_id to fall back to file stem, got %q", suites[0].Records[0].PlatformID)
	}
}

func TestCollectMergesArtifactsForSamePlatform(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "board_a.json", validSuiteJSON)
	writeResultFile(t, dir, "board_a.xml", `<testsuite name="suites/login" tests="1" failures="0">
  <testcase name="valid_credentials"/>
</testsuite>`)

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir

	suites, err := New(cfg).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(suites) != 1 {
		t.Fatalf("expected one merged suite for board_a, got %d", len(suites))
	}
	if suites[0].PlatformID != "board_a" {
		t.Fatalf("expected platform board_a, got %q", suites[0].PlatformID)
	}
	if len(suites[0].Records) != 2 {
		t.Fatalf("expected records from both artifacts, got %d", len(suites[0].Records))
	}
}

func TestCollectMissingDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = filepath.Join(t.TempDir(), "does-not-exist")

	_, err := New(cfg).Collect(context.Background())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestCollectNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := writeResultFile(t, dir, "file.json", validSuiteJSON)

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = file

	_, err := New(cfg).Collect(context.Background())
	if err == nil {
		t.Fatal("expected error when suites path is a file")
	}
}

func TestCollectMalformedJSONIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "board_a.json", "{broken")

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir

	_, err := New(cfg).Collect(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != filepath.Join(dir, "board_a.json") {
		t.Fatalf("expected offending path in error, got %q", parseErr.Path)
	}
}

func TestCollectEmptyDataIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "board_a.json", `{"data": []}`)

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir

	_, err := New(cfg).Collect(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for empty data, got %v", err)
	}
}

func TestCollectNoArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "readme.md", "nothing to see")

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir

	_, err := New(cfg).Collect(context.Background())
	if err == nil {
		t.Fatal("expected error when directory holds no artifacts")
	}
}

func TestCollectSkipsExcludedPlatforms(t *testing.T) {
	dir := t.TempDir()
	writeResultFile(t, dir, "board_a.json", validSuiteJSON)
	writeResultFile(t, dir, "qemu_arm64.json", validSuiteJSON)

	cfg := config.DefaultConfig()
	cfg.TestSuitesDir = dir
	cfg.ExcludePlatforms = []string{"qemu_*"}
	cfg.Normalize()

	suites, err := New(cfg).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(suites) != 1 || suites[0].PlatformID != "board_a" {
		t.Fatalf("expected only board_a, got %+v", suites)
	}
}
