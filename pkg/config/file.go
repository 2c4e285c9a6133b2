package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".sdet.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".sdet.yml"
)

// FileConfig represents values loaded from a .sdet.yaml file.
type FileConfig struct {
	ProductName      string   `yaml:"product_name"`
	TestSuitesDir    string   `yaml:"test_suites_dir"`
	ReportType       *int     `yaml:"report_type"`
	OutputDir        string   `yaml:"output_dir"`
	PathToOutputDir  string   `yaml:"path_to_output_dir"`
	Minify           *bool    `yaml:"minify"`
	HistoryDB        string   `yaml:"history_db"`
	BaselinePath     string   `yaml:"baseline"`
	ExcludeTests     []string `yaml:"exclude_tests"`
	ExcludePlatforms []string `yaml:"exclude_platforms"`
}

// OutputDirValue returns the first configured output directory.
func (fc *FileConfig) OutputDirValue() string {
	if fc == nil {
		return ""
	}
	if dir := strings.TrimSpace(fc.PathToOutputDir); dir != "" {
		return dir
	}
	return strings.TrimSpace(fc.OutputDir)
}

// Normalize trims and removes empty items from list fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.ExcludeTests = normalizeList(fc.ExcludeTests)
	fc.ExcludePlatforms = normalizeList(fc.ExcludePlatforms)
	fc.ProductName = strings.TrimSpace(fc.ProductName)
	fc.TestSuitesDir = strings.TrimSpace(fc.TestSuitesDir)
	fc.OutputDir = strings.TrimSpace(fc.OutputDir)
	fc.PathToOutputDir = strings.TrimSpace(fc.PathToOutputDir)
	fc.HistoryDB = strings.TrimSpace(fc.HistoryDB)
	fc.BaselinePath = strings.TrimSpace(fc.BaselinePath)
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
