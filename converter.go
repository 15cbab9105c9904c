package img2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Converter orchestrates the image-to-PDF pipeline: normalization and page
// rendering run in parallel per image, then the pages are assembled in
// input order. Create with NewConverter; a Converter is safe for concurrent
// use and holds no resources that need closing.
type Converter struct {
	cfg        converterConfig
	normalizer *Normalizer
	renderer   *Renderer
	scheduler  *Scheduler
	assembler  *Assembler
}

// Result describes a written document.
type Result struct {
	Output   string
	Pages    int
	Bytes    int64
	Duration time.Duration
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithWorkers, WithJPEGQuality).
// Returns error if an option is out of range or the caption font cannot be read.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			Config: DefaultConfig(),
			logger: zerolog.Nop(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	var font []byte
	if c.cfg.CaptionFont != "" {
		var err error
		font, err = os.ReadFile(c.cfg.CaptionFont) // #nosec G304 -- user-selected font file
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptionFont, err)
		}
	}

	c.normalizer = NewNormalizer(c.cfg.MaxDimension)
	c.renderer = NewRenderer(c.cfg.JPEGQuality, font)
	c.scheduler = NewScheduler(c.cfg.Workers, c.cfg.progress, c.cfg.logger)
	c.assembler = NewAssembler(c.cfg.logger)
	return c, nil
}

// Convert turns the images at paths into one PDF written to dest, one page
// per image in the given order.
func (c *Converter) Convert(ctx context.Context, paths []string, dest string) (*Result, error) {
	return c.ConvertSources(ctx, SourcesFromPaths(paths), dest)
}

// ConvertSources is Convert for sources that may hold in-memory images.
// The batch is fail-fast: the first image that cannot be decoded or
// rendered aborts the conversion with a *BatchError and dest is not written.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertSources(ctx context.Context, sources []Source, dest string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if dest == "" {
		return nil, ErrEmptyOutput
	}

	start := time.Now()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fragments, err := c.RenderPages(ctx, sources)
	if err != nil {
		return nil, err
	}

	if err := c.assembler.Assemble(ctx, fragments, dest); err != nil {
		return nil, err
	}

	result = &Result{
		Output:   dest,
		Pages:    len(fragments),
		Duration: time.Since(start),
	}
	if info, statErr := os.Stat(dest); statErr == nil {
		result.Bytes = info.Size()
	}

	c.cfg.logger.Info().
		Str("output", dest).
		Int("pages", result.Pages).
		Int64("bytes", result.Bytes).
		Dur("elapsed", result.Duration).
		Msg("conversion complete")
	return result, nil
}

// RenderPages normalizes and renders every source in parallel and returns
// one single-page fragment per source, ordered by source index.
func (c *Converter) RenderPages(ctx context.Context, sources []Source) ([]Fragment, error) {
	return c.scheduler.Run(ctx, sources, c.renderPage)
}

// renderPage is the per-source task: normalize, then render.
func (c *Converter) renderPage(ctx context.Context, src Source) ([]byte, error) {
	img, err := c.normalizer.Normalize(ctx, src)
	if err != nil {
		return nil, err
	}

	caption := ""
	if c.cfg.ShowCaption {
		caption = src.Name()
	}

	data, err := c.renderer.Render(ctx, img, caption)
	if err != nil {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			return nil, &RenderError{Path: src.String(), Cause: renderErr.Cause}
		}
		return nil, err
	}
	return data, nil
}

// withTimeout applies the configured deadline, if any.
func (c *Converter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.timeout > 0 {
		return context.WithTimeout(ctx, c.cfg.timeout)
	}
	return context.WithCancel(ctx)
}
