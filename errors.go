package img2pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrNoSources     = errors.New("no source images")
	ErrInvalidSource = errors.New("invalid source")
	ErrDecode        = errors.New("image decoding failed")
	ErrRender        = errors.New("page rendering failed")
	ErrBatch         = errors.New("batch aborted")
	ErrMerge         = errors.New("PDF merge failed")
	ErrWriteOutput   = errors.New("failed to write output document")
	ErrEmptyOutput   = errors.New("output path cannot be empty")

	// Assembly precondition errors.
	ErrNoFragments   = errors.New("no page fragments to assemble")
	ErrFragmentOrder = errors.New("page fragments out of order")

	// Configuration validation errors.
	ErrInvalidQuality   = errors.New("invalid JPEG quality")
	ErrInvalidDimension = errors.New("invalid maximum image dimension")
	ErrInvalidWorkers   = errors.New("invalid worker count")
	ErrCaptionFont      = errors.New("caption font cannot be loaded")
)

// DecodeError reports an image that could not be read or decoded.
// It matches ErrDecode with errors.Is.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Cause} }

// RenderError reports a normalized image that could not be laid out or
// serialized as a page.
type RenderError struct {
	Path  string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Cause)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Cause} }

// BatchError wraps the first task failure of a batch. Path and Index
// identify the offending source; Cause is usually a *DecodeError or a
// *RenderError.
type BatchError struct {
	Path  string
	Index int
	Cause error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch aborted at image %d (%s): %v", e.Index+1, e.Path, e.Cause)
}

func (e *BatchError) Unwrap() []error { return []error{ErrBatch, e.Cause} }

// MergeError reports a fragment that could not be merged, or a failure to
// write the merged document. Index is -1 when no single fragment is at fault.
type MergeError struct {
	Index int
	Cause error
}

func (e *MergeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("merging pages: %v", e.Cause)
	}
	return fmt.Sprintf("merging page %d: %v", e.Index+1, e.Cause)
}

func (e *MergeError) Unwrap() []error { return []error{ErrMerge, e.Cause} }
