// Package img2pdf converts batches of raster images into a single PDF, one
// page per image, preserving input order.
//
// # Quick Start
//
// Create a converter and convert a list of files:
//
//	conv, err := img2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, []string{"a.jpg", "b.png"}, "album.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Pages, "pages written")
//
// # Conversion Pipeline
//
// Each image goes through these stages on a bounded worker pool:
//
//  1. Decoding (PNG, JPEG, GIF, BMP, TIFF, WebP) with dimension checks
//  2. Normalization: EXIF orientation, transparency flattened onto white,
//     downscaling to the configured maximum dimension
//  3. Rendering to a standalone one-page PDF fragment (A4, turned to match
//     the image, optional file name caption)
//
// The fragments are then merged in input order and written atomically to
// the destination.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := img2pdf.NewConverter(
//	    img2pdf.WithWorkers(8),
//	    img2pdf.WithMaxDimension(3000),
//	    img2pdf.WithJPEGQuality(90),
//	    img2pdf.WithCaption(false),
//	    img2pdf.WithTimeout(5 * time.Minute),
//	)
//
// # Failure Handling
//
// Batches are fail-fast. The first image that cannot be decoded or rendered
// cancels the remaining work and is reported as a *BatchError; the
// destination is not written. Use errors.Is with the sentinel errors
// (ErrDecode, ErrRender, ErrMerge, ...) and errors.As with the typed errors
// to inspect failures.
//
// # Progress
//
// WithProgress registers a callback that receives throttled, strictly
// increasing completion snapshots from a dedicated goroutine.
package img2pdf
