package main

import (
	"errors"
	"os"

	img2pdf "github.com/alnah/go-img2pdf"
	"github.com/alnah/go-img2pdf/internal/config"
)

// Exit codes for img2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, output not writable
	ExitImage   = 4 // Image could not be decoded or rendered
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Image errors (exit 4)
	if errors.Is(err, img2pdf.ErrDecode) ||
		errors.Is(err, img2pdf.ErrRender) {
		return ExitImage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, img2pdf.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrUnsupportedFormat) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, img2pdf.ErrInvalidQuality) ||
		errors.Is(err, img2pdf.ErrInvalidDimension) ||
		errors.Is(err, img2pdf.ErrInvalidWorkers) ||
		errors.Is(err, img2pdf.ErrCaptionFont) ||
		errors.Is(err, img2pdf.ErrEmptyOutput) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrUnsupportedImage) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
