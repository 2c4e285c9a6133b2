// Package baseline persists fingerprints of known test failures so CI
// gating only trips on failures that are new since the baseline was
// recorded.
package baseline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdc-tools/sdet/internal/models"
)

const (
	// DefaultPath is used when --update-baseline is enabled without an
	// explicit --baseline path.
	DefaultPath = ".sdet-baseline.json"
	fileVersion = 1
)

// Set stores baseline fingerprints.
type Set map[string]struct{}

// File is the persisted baseline JSON payload.
type File struct {
	Version      int      `json:"version"`
	Fingerprints []string `json:"fingerprints"`
}

// Fingerprint identifies one failing test/platform pair for a product.
func Fingerprint(product, testName, platformID string) string {
	sum := sha256.Sum256([]byte(product + "|" + testName + "|" + platformID))
	return hex.EncodeToString(sum[:])
}

// Load reads a baseline file. Missing files return an empty set.
func Load(path string) (Set, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("baseline path is empty")
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("read baseline file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse baseline file: %w", err)
	}
	if file.Version != 0 && file.Version != fileVersion {
		return nil, fmt.Errorf("unsupported baseline version: %d", file.Version)
	}

	set := Set{}
	for _, fingerprint := range file.Fingerprints {
		if fingerprint == "" {
			continue
		}
		set[fingerprint] = struct{}{}
	}

	return set, nil
}

// Save writes a baseline file with sorted, unique fingerprints.
func Save(path string, set Set) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return errors.New("baseline path is empty")
	}

	dir := filepath.Dir(trimmed)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create baseline directory: %w", err)
		}
	}

	payload := File{
		Version:      fileVersion,
		Fingerprints: Sorted(set),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline file: %w", err)
	}

	if err := os.WriteFile(trimmed, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write baseline file: %w", err)
	}

	return nil
}

// FailureFingerprints returns the fingerprints of every failed
// test/platform pair in the report.
func FailureFingerprints(report *models.Report) []string {
	if report == nil {
		return nil
	}

	var fingerprints []string
	for _, test := range report.Failed {
		for _, run := range test.Platforms {
			if run.Status != models.StatusFailed {
				continue
			}
			fingerprints = append(fingerprints, Fingerprint(report.Product, test.Name, run.PlatformID))
		}
	}
	return fingerprints
}

// CountNewFailures returns how many report failures are absent from the
// baseline set. A nil set counts every failure as new.
func CountNewFailures(report *models.Report, set Set) int {
	count := 0
	for _, fingerprint := range FailureFingerprints(report) {
		if _, known := set[fingerprint]; !known {
			count++
		}
	}
	return count
}

// AddAll inserts fingerprints into the target set.
func AddAll(target Set, fingerprints []string) {
	for _, fingerprint := range fingerprints {
		if fingerprint == "" {
			continue
		}
		target[fingerprint] = struct{}{}
	}
}

// Sorted returns sorted fingerprints from a set.
func Sorted(set Set) []string {
	fingerprints := make([]string, 0, len(set))
	for fingerprint := range set {
		fingerprints = append(fingerprints, fingerprint)
	}
	sort.Strings(fingerprints)
	return fingerprints
}
