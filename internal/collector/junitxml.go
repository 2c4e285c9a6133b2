package collector

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
)

// JUnit XML artifacts are converted into the native record model so the
// rest of the pipeline only ever sees suite results. A <testsuite> maps
// to one test record; its cases are re-expressed as TAP lines.
type junitXMLConverter struct{}

type junitXML struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Time     float64     `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitDetail  `xml:"failure"`
	Error     *junitDetail  `xml:"error"`
	Skipped   *junitSkipped `xml:"skipped"`
}

type junitDetail struct {
	Message string `xml:"message,attr"`
	Value   string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

func (c *junitXMLConverter) Detect(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xml")
}

func (c *junitXMLConverter) Parse(path string) (*models.SuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %q: %w", path, err)
	}

	suites, err := parseJUnitSuites(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	id := platformID(path)
	records := make([]models.TestRecord, 0, len(suites))
	for _, suite := range suites {
		failed := suite.Failures + suite.Errors
		records = append(records, models.TestRecord{
			TestName:    suite.Name,
			PlatformID:  id,
			TestCases:   models.Count(suite.Tests),
			TestsFailed: models.Count(failed),
			TAP:         junitCasesToTAP(suite.Cases),
			DurationMS:  int64(suite.Time * 1000),
		})
	}
	if len(records) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no testsuite elements")}
	}

	return &models.SuiteResult{
		PlatformID: id,
		Source:     path,
		Records:    records,
	}, nil
}

// parseJUnitSuites accepts both a <testsuites> root and a bare
// <testsuite> document, the two layouts runners produce in the wild.
func parseJUnitSuites(data []byte) ([]junitSuite, error) {
	var multi junitXML
	multiErr := xml.Unmarshal(data, &multi)
	if multiErr == nil {
		return multi.Suites, nil
	}

	var single junitSuite
	if err := xml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("not a junit document: %w (testsuites: %v)", err, multiErr)
	}
	return []junitSuite{single}, nil
}

func junitCasesToTAP(cases []junitCase) string {
	var b strings.Builder
	for i, tc := range cases {
		name := tc.Name
		if tc.ClassName != "" {
			name = tc.ClassName + "." + tc.Name
		}

		switch {
		case tc.Skipped != nil:
			fmt.Fprintf(&b, "ok %d - %s # SKIP %s\n", i+1, name, strings.TrimSpace(tc.Skipped.Message))
		case tc.Failure != nil || tc.Error != nil:
			fmt.Fprintf(&b, "not ok %d - %s\n", i+1, name)
		default:
			fmt.Fprintf(&b, "ok %d - %s\n", i+1, name)
		}
	}
	return b.String()
}
