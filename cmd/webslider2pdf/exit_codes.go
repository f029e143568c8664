package main

import (
	"errors"

	"github.com/alnah/go-webslider2pdf/internal/config"
)

// Exit codes for the webslider2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // Conversion failed
	ExitUsage   = 2 // Invalid arguments, flags, or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitUsage
	}

	// Everything that fails during the pipeline itself (exit 1)
	return ExitGeneral
}
