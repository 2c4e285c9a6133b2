package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
)

// resultFile is the native artifact layout: one JSON file per platform,
// named <platform_id>.json, with all test records under "data".
type resultFile struct {
	Data []models.TestRecord `json:"data"`
}

type jsonConverter struct{}

func (c *jsonConverter) Detect(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func (c *jsonConverter) Parse(path string) (*models.SuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %q: %w", path, err)
	}

	var file resultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(file.Data) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no test records under \"data\"")}
	}

	id := platformID(path)
	for i := range file.Data {
		if strings.TrimSpace(file.Data[i].PlatformID) == "" {
			file.Data[i].PlatformID = id
		}
	}

	return &models.SuiteResult{
		PlatformID: id,
		Source:     path,
		Records:    file.Data,
	}, nil
}
