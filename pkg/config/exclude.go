package config

import (
	"path"
	"strings"
)

// Normalize trims exclusion patterns and removes empty values.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.ExcludeTests = normalizePatterns(c.ExcludeTests)
	c.ExcludePlatforms = normalizePatterns(c.ExcludePlatforms)
}

// IsPlatformExcluded reports whether a platform id matches exclude patterns.
func (c *Config) IsPlatformExcluded(platformID string) bool {
	if c == nil || len(c.ExcludePlatforms) == 0 {
		return false
	}

	value := normalizePattern(platformID)
	if value == "" {
		return false
	}

	for _, pattern := range c.ExcludePlatforms {
		if patternMatches(pattern, value) {
			return true
		}
	}

	return false
}

// IsTestExcluded reports whether a test name matches exclude patterns.
// Patterns match both the full name and its path base, so "smoke_*"
// excludes "suites/smoke_login" too.
func (c *Config) IsTestExcluded(testName string) bool {
	if c == nil || len(c.ExcludeTests) == 0 {
		return false
	}

	normalized := normalizePattern(testName)
	if normalized == "" {
		return false
	}
	base := path.Base(normalized)

	for _, pattern := range c.ExcludeTests {
		if patternMatches(pattern, normalized) {
			return true
		}
		if base != normalized && patternMatches(pattern, base) {
			return true
		}
	}

	return false
}

func normalizePatterns(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, pattern := range values {
		p := normalizePattern(pattern)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return normalized
}

func normalizePattern(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func patternMatches(pattern, value string) bool {
	normalizedPattern := normalizePattern(pattern)
	normalizedValue := normalizePattern(value)
	if normalizedPattern == "" || normalizedValue == "" {
		return false
	}

	// Invalid glob patterns are treated as exact matches.
	matched, err := path.Match(normalizedPattern, normalizedValue)
	if err == nil {
		return matched
	}
	return normalizedPattern == normalizedValue
}
