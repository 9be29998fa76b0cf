package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
)

func asDocServe(err error, target **DocServeError) bool {
	return stderrors.As(err, target)
}

// CLIErrorAdapter handles error presentation and exit code determination for
// the command-line entry points.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the process exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	switch CategoryOf(err) {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7
	case CategoryCompose, CategoryFileSystem:
		return 11
	case CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var dse *DocServeError
	if asDocServe(err, &dse) {
		if a.verbose {
			return dse.Error()
		}
		switch dse.Category {
		case CategoryValidation, CategoryConfig:
			return dse.Message
		default:
			return fmt.Sprintf("%s: %s", dse.Category, dse.Message)
		}
	}

	return fmt.Sprintf("Error: %v", err)
}

// HandleError prints an error and exits the process with the mapped code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.verbose {
		a.logger.Error("Command failed", "error", err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}
