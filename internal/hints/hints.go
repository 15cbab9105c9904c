// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"context"
	"errors"
	"os"
	"unicode"

	img2pdf "github.com/alnah/go-img2pdf"
	"github.com/alnah/go-img2pdf/internal/config"
)

// ForError returns the hint matching err, or "" when none applies.
func ForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return ForConfigNotFound()
	case errors.Is(err, img2pdf.ErrDecode):
		return ForDecode()
	case errors.Is(err, os.ErrPermission), errors.Is(err, img2pdf.ErrWriteOutput):
		return ForOutputDirectory()
	}
	return ""
}

// ForTimeout returns a hint about increasing timeout for large batches.
func ForTimeout() string {
	return format("for large batches, use --timeout or lower --max-dimension")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("use --config /path/to/file.yaml or create go-img2pdf/<name>.yaml in your user config directory")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForDecode returns hints for images that cannot be decoded.
func ForDecode() string {
	return format("supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP; the whole batch stops at the first bad image")
}

// ForCaption returns a hint when captions contain characters the built-in
// font cannot draw and no caption font is set.
func ForCaption(names []string, captionFont string) string {
	if captionFont != "" {
		return ""
	}
	for _, name := range names {
		if !isLatin1(name) {
			return format("file names with non-Latin characters need --caption-font /path/to/font.ttf")
		}
	}
	return ""
}

// isLatin1 reports whether s only uses characters of the core PDF fonts.
func isLatin1(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
