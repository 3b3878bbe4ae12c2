package main

import (
	"context"
	"errors"
	"os"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/config"
)

// Exit codes for the resume2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // PDF written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template
	ExitIO      = 3 // Data file missing or unreadable, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// Template errors are checked before I/O so that a missing template
// directory is a usage error, not an I/O one.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted runs are general errors wherever they stopped.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Browser errors (exit 4)
	if errors.Is(err, resume2pdf.ErrConversion) {
		return ExitBrowser
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, resume2pdf.ErrInvalidPageSize) ||
		errors.Is(err, resume2pdf.ErrInvalidOrientation) ||
		errors.Is(err, resume2pdf.ErrInvalidMargin) ||
		errors.Is(err, resume2pdf.ErrInvalidBackend) ||
		errors.Is(err, resume2pdf.ErrTemplate) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, resume2pdf.ErrLoad) ||
		errors.Is(err, resume2pdf.ErrWrite) ||
		errors.Is(err, ErrEnvFile) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
