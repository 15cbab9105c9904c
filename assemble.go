package img2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/alnah/go-img2pdf/internal/fileutil"
)

// outputPermissions is the mode of written documents (rw-r--r--).
const outputPermissions = 0o644

// errEmptyFragment reports a fragment with no bytes.
var errEmptyFragment = errors.New("fragment is empty")

// Assembler merges ordered page fragments into one document.
type Assembler struct {
	logger zerolog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(logger zerolog.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble merges fragments and writes the document to dest. The document
// is written to a temporary file next to dest and renamed into place only
// when complete, so dest is never left partially written.
func (a *Assembler) Assemble(ctx context.Context, fragments []Fragment, dest string) error {
	if dest == "" {
		return ErrEmptyOutput
	}
	if err := checkFragments(fragments); err != nil {
		return err
	}

	err := fileutil.WriteFileAtomic(dest, outputPermissions, func(w io.Writer) error {
		return a.Merge(ctx, fragments, w)
	})
	if err != nil {
		var mergeErr *MergeError
		if errors.As(err, &mergeErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &MergeError{Index: -1, Cause: fmt.Errorf("%w: %w", ErrWriteOutput, err)}
	}

	a.logger.Debug().Str("output", dest).Int("pages", len(fragments)).Msg("document written")
	return nil
}

// Merge writes the document made of fragments, in order, to w. A single
// fragment is copied as is; several are merged page by page. A fragment that
// cannot be parsed yields a *MergeError carrying its index.
func (a *Assembler) Merge(ctx context.Context, fragments []Fragment, w io.Writer) error {
	if err := checkFragments(fragments); err != nil {
		return err
	}

	if len(fragments) == 1 {
		if _, err := w.Write(fragments[0].Data); err != nil {
			return &MergeError{Index: -1, Cause: fmt.Errorf("%w: %w", ErrWriteOutput, err)}
		}
		return nil
	}

	return a.mergeAll(ctx, fragments, w)
}

// mergeAll checks every fragment is a one-page PDF, then merges them.
func (a *Assembler) mergeAll(ctx context.Context, fragments []Fragment, w io.Writer) error {
	conf := pdfConfig()

	readers := make([]io.ReadSeeker, len(fragments))
	for i, f := range fragments {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		pages, err := api.PageCount(bytes.NewReader(f.Data), conf)
		if err != nil {
			return &MergeError{Index: f.Index, Cause: err}
		}
		if pages != 1 {
			return &MergeError{Index: f.Index, Cause: fmt.Errorf("fragment has %d pages, want 1", pages)}
		}
		readers[i] = bytes.NewReader(f.Data)
	}

	a.logger.Debug().Int("fragments", len(fragments)).Msg("merging fragments")
	if err := api.MergeRaw(readers, w, false, conf); err != nil {
		return &MergeError{Index: -1, Cause: err}
	}
	return nil
}

// checkFragments verifies fragments are non-empty and indexed 0..n-1 in order.
func checkFragments(fragments []Fragment) error {
	if len(fragments) == 0 {
		return ErrNoFragments
	}
	for i, f := range fragments {
		if f.Index != i {
			return fmt.Errorf("%w: position %d holds index %d", ErrFragmentOrder, i, f.Index)
		}
		if len(f.Data) == 0 {
			return &MergeError{Index: i, Cause: errEmptyFragment}
		}
	}
	return nil
}

// CountPages returns the number of pages of the PDF read from r.
func CountPages(r io.ReadSeeker) (int, error) {
	return api.PageCount(r, pdfConfig())
}

// CountPagesFile returns the number of pages of the PDF at path.
func CountPagesFile(path string) (int, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-selected document
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return CountPages(f)
}

var configDirOnce sync.Once

// pdfConfig returns a relaxed pdfcpu configuration that never touches the
// user's config directory.
func pdfConfig() *model.Configuration {
	configDirOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
