package analyzer

import (
	"testing"
)

func TestParseTAPClassifiesLines(t *testing.T) {
	raw := "TAP version 13\n" +
		"1..4\n" +
		"ok 1 - boot completes\n" +
		"not ok 2 - network up\n" +
		"ok 3 - display probe # SKIP headless rig\n" +
		"   ok 4 - shutdown clean\n" +
		"\n" +
		"# diagnostics line\n"

	set := ParseTAP(raw)

	if len(set.OK) != 2 {
		t.Fatalf("expected 2 ok scenarios, got %d: %v", len(set.OK), set.OK)
	}
	if len(set.NotOK) != 1 || set.NotOK[0] != "not ok 2 - network up" {
		t.Fatalf("unexpected not_ok scenarios: %v", set.NotOK)
	}
	if len(set.Skipped) != 1 {
		t.Fatalf("expected 1 skipped scenario, got %v", set.Skipped)
	}
}

func TestParseTAPFailedLinesNotDoubleCounted(t *testing.T) {
	// "not ok 2 - x" contains "ok 2 - x"; it must only land in NotOK.
	set := ParseTAP("not ok 2 - network up\n")
	if len(set.OK) != 0 {
		t.Fatalf("failed line leaked into OK: %v", set.OK)
	}
	if len(set.NotOK) != 1 {
		t.Fatalf("expected 1 not_ok, got %v", set.NotOK)
	}
}

func TestParseTAPEmptyInput(t *testing.T) {
	set := ParseTAP("")
	if !set.Empty() {
		t.Fatalf("expected empty scenario set, got %+v", set)
	}
}
