package analyzer

import (
	"regexp"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
)

var (
	tapOKRe    = regexp.MustCompile(`^\s*ok [0-9]+ -\s`)
	tapNotOKRe = regexp.MustCompile(`^\s*not ok [0-9]+ -\s`)
	tapSkipRe  = regexp.MustCompile(`# SKIP\b`)
)

// ParseTAP splits raw TAP output into ok / not ok / skipped scenario
// lines. Skip directives win over the ok prefix, and "not ok" is checked
// before "ok" so failed lines are never double-counted.
func ParseTAP(raw string) models.ScenarioSet {
	var set models.ScenarioSet

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		switch {
		case tapSkipRe.MatchString(trimmed):
			set.Skipped = append(set.Skipped, trimmed)
		case tapNotOKRe.MatchString(trimmed):
			set.NotOK = append(set.NotOK, trimmed)
		case tapOKRe.MatchString(trimmed):
			set.OK = append(set.OK, trimmed)
		}
	}

	return set
}
