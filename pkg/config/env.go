package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// EnvOverrides carries configuration read from SDET_* environment
// variables. Nil fields were not set in the environment.
type EnvOverrides struct {
	ProductName   *string `env:"SDET_PRODUCT_NAME"`
	TestSuitesDir *string `env:"SDET_TEST_SUITES_DIR"`
	ReportType    *int    `env:"SDET_REPORT_TYPE"`
	OutputDir     *string `env:"SDET_OUTPUT_DIR"`
	Minify        *bool   `env:"SDET_MINIFY"`
	HistoryDB     *string `env:"SDET_HISTORY_DB"`
	BaselinePath  *string `env:"SDET_BASELINE"`
}

// LoadEnv reads SDET_* overrides from the process environment.
func LoadEnv(ctx context.Context) (*EnvOverrides, error) {
	overrides := &EnvOverrides{}
	if err := envconfig.Process(ctx, overrides); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return overrides, nil
}

// Apply copies set override values onto cfg.
func (e *EnvOverrides) Apply(cfg *Config) {
	if e == nil || cfg == nil {
		return
	}
	if e.ProductName != nil {
		cfg.ProductName = *e.ProductName
	}
	if e.TestSuitesDir != nil {
		cfg.TestSuitesDir = *e.TestSuitesDir
	}
	if e.ReportType != nil {
		cfg.ReportType = *e.ReportType
	}
	if e.OutputDir != nil {
		cfg.OutputDir = *e.OutputDir
	}
	if e.Minify != nil {
		cfg.Minify = *e.Minify
	}
	if e.HistoryDB != nil {
		cfg.HistoryDB = *e.HistoryDB
	}
	if e.BaselinePath != nil {
		cfg.BaselinePath = *e.BaselinePath
	}
}
