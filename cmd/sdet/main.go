package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pdc-tools/sdet/internal/app"
	"github.com/pdc-tools/sdet/internal/collector"
	"github.com/pdc-tools/sdet/internal/logging"
)

var (
	version    = "0.1.0"
	verbose    bool
	isFirstRun bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
	ExitParse      = 4
	ExitWrite      = 5
	ExitFailures   = 6
)

// FailuresError indicates the report was generated but new test
// failures were detected and failure gating is enabled.
type FailuresError struct {
	Count int
}

func (e *FailuresError) Error() string {
	return fmt.Sprintf("%d new test failures detected", e.Count)
}

func main() {
	logging.Init(false)
	isFirstRun = app.IsFirstRun()

	root := NewRootCmd()

	if err := root.Execute(); err != nil {
		exitCode := classifyError(err)
		var fe *FailuresError
		if errors.As(err, &fe) {
			slog.Info("test failures detected", slog.Int("count", fe.Count))
		} else {
			slog.Error("command failed", slog.String("error", err.Error()))
		}
		os.Exit(exitCode)
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fe *FailuresError
	if errors.As(err, &fe) {
		return ExitFailures
	}

	var pe *collector.ParseError
	if errors.As(err, &pe) {
		return ExitParse
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	if errors.Is(err, fs.ErrPermission) {
		return ExitWrite
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "not a directory") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "failed to write") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "read-only file system") {
		return ExitWrite
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "must not") ||
		strings.Contains(msg, "unknown flag") {
		return ExitInvalidArg
	}

	return ExitInternal
}
