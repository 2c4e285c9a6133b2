package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
	"github.com/pdc-tools/sdet/pkg/config"
)

// Collector interface for collecting test-suite result artifacts
type Collector interface {
	Collect(ctx context.Context) ([]*models.SuiteResult, error)
}

// collector implements the Collector interface
type collector struct {
	config     *config.Config
	converters []Converter
}

// Converter parses one result artifact format into suite results.
// Mirrors the detect-then-parse flow used by test report uploaders.
type Converter interface {
	// Detect reports whether this converter handles the given file.
	Detect(path string) bool
	// Parse reads one artifact into a suite result.
	Parse(path string) (*models.SuiteResult, error)
}

// New creates a new collector instance
func New(cfg *config.Config) Collector {
	return &collector{
		config: cfg,
		converters: []Converter{
			&jsonConverter{},
			&junitXMLConverter{},
		},
	}
}

// Collect enumerates and parses all result artifacts under the configured
// test suites directory. It is read-only: no file is modified.
func (c *collector) Collect(ctx context.Context) ([]*models.SuiteResult, error) {
	dir := c.config.TestSuitesDir

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("test suites directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test suites path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test suites directory %q: %w", dir, err)
	}

	var results []*models.SuiteResult
	byPlatform := make(map[string]*models.SuiteResult)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		conv := c.converterFor(path)
		if conv == nil {
			slog.Debug("skipping unrecognized artifact", slog.String("path", path))
			continue
		}

		if c.config.IsPlatformExcluded(platformID(path)) {
			slog.Debug("skipping excluded platform", slog.String("path", path))
			continue
		}

		suite, err := conv.Parse(path)
		if err != nil {
			return nil, err
		}

		// Artifacts in different formats can share one file stem, e.g.
		// board_a.json next to board_a.xml. They describe the same
		// platform, so their records fold into a single suite and the
		// platform id appears once in the report.
		if existing, ok := byPlatform[suite.PlatformID]; ok {
			slog.Debug("merging artifact into existing platform suite",
				slog.String("path", path),
				slog.String("platform", suite.PlatformID),
			)
			existing.Records = append(existing.Records, suite.Records...)
			existing.Source += ", " + suite.Source
			continue
		}
		byPlatform[suite.PlatformID] = suite
		results = append(results, suite)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no result artifacts found in directory %q", dir)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].PlatformID < results[j].PlatformID
	})

	return results, nil
}

func (c *collector) converterFor(path string) Converter {
	for _, conv := range c.converters {
		if conv.Detect(path) {
			return conv
		}
	}
	return nil
}

// platformID derives the platform id from the artifact file name.
func platformID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
