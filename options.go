package img2pdf

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	Config
	timeout  time.Duration // 0 = no deadline
	progress ProgressFunc
	logger   zerolog.Logger
}

// WithConfig replaces every recognized option at once.
func WithConfig(cfg Config) Option {
	return func(c *Converter) {
		c.cfg.Config = cfg
	}
}

// WithWorkers sets the worker pool size (0 = min(4, cores)).
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.Workers = n
	}
}

// WithMaxDimension sets the downscale threshold in pixels.
func WithMaxDimension(px int) Option {
	return func(c *Converter) {
		c.cfg.MaxDimension = px
	}
}

// WithJPEGQuality sets the quality of embedded page images (1-100).
func WithJPEGQuality(q int) Option {
	return func(c *Converter) {
		c.cfg.JPEGQuality = q
	}
}

// WithCaption enables or disables the file name under each image.
func WithCaption(show bool) Option {
	return func(c *Converter) {
		c.cfg.ShowCaption = show
	}
}

// WithCaptionFont sets a TrueType font file used to draw captions.
func WithCaptionFont(path string) Option {
	return func(c *Converter) {
		c.cfg.CaptionFont = path
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.cfg.progress = fn
	}
}

// WithLogger sets the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithTimeout bounds the whole conversion.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("img2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}
