package img2pdf

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Image bounds.
const (
	DefaultMaxDimension = 2048
	MinMaxDimension     = 16
	MaxMaxDimension     = 16384
)

// JPEG quality bounds for embedded page images.
const (
	DefaultJPEGQuality = 85
	MinJPEGQuality     = 1
	MaxJPEGQuality     = 100
)

// SupportedExtensions lists the file extensions accepted as image input.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// IsSupportedImage reports whether path has a supported image extension
// (case-insensitive).
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Source is one input image: a file path or an in-memory byte stream, plus
// its position in the batch. Index is only used to restore order.
type Source struct {
	Path  string // File path (used when Data is nil)
	Data  []byte // Raw encoded image (optional, takes priority over Path)
	Index int    // 0-based batch position
}

// Name returns the label drawn under the page: the file's base name, or a
// positional name for in-memory sources.
func (s Source) Name() string {
	if s.Path != "" {
		return filepath.Base(s.Path)
	}
	return fmt.Sprintf("image-%d", s.Index+1)
}

// String returns the path, or the positional name for in-memory sources.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Name()
}

// SourcesFromPaths builds an ordered source list from file paths.
func SourcesFromPaths(paths []string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p, Index: i}
	}
	return sources
}

// NormalizedImage is an upright, opaque RGB raster ready for layout.
type NormalizedImage struct {
	Img *image.RGBA
}

// Width returns the raster width in pixels.
func (n *NormalizedImage) Width() int { return n.Img.Rect.Dx() }

// Height returns the raster height in pixels.
func (n *NormalizedImage) Height() int { return n.Img.Rect.Dy() }

// Fragment is a complete single-page PDF tagged with its batch position.
type Fragment struct {
	Index  int
	Source string
	Data   []byte
}

// Progress is a snapshot of batch completion.
type Progress struct {
	Completed int
	Total     int
	Label     string // Name of the image that just completed (may be empty)
}

// ProgressFunc receives progress snapshots. It is called from a dedicated
// goroutine, never from a worker, and must not assume any UI thread.
type ProgressFunc func(Progress)

// Config holds the recognized conversion options.
type Config struct {
	MaxDimension int    // Downscale threshold in pixels (default 2048)
	JPEGQuality  int    // Embedded JPEG quality 1-100 (default 85)
	Workers      int    // Pool size, 0 = min(4, cores)
	ShowCaption  bool   // Draw the file name under each image
	CaptionFont  string // Optional TrueType font file for captions
}

// DefaultConfig returns the default conversion options.
func DefaultConfig() Config {
	return Config{
		MaxDimension: DefaultMaxDimension,
		JPEGQuality:  DefaultJPEGQuality,
		Workers:      0,
		ShowCaption:  true,
	}
}

// Validate checks that all options are within range.
func (c Config) Validate() error {
	if c.MaxDimension < MinMaxDimension || c.MaxDimension > MaxMaxDimension {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidDimension, c.MaxDimension, MinMaxDimension, MaxMaxDimension)
	}
	if c.JPEGQuality < MinJPEGQuality || c.JPEGQuality > MaxJPEGQuality {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidQuality, c.JPEGQuality, MinJPEGQuality, MaxJPEGQuality)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkers, c.Workers)
	}
	return nil
}
