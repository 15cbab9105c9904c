package img2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register decoders
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/alnah/go-img2pdf/internal/imaging"
)

// errEmptyImage reports a zero-byte file or byte stream.
var errEmptyImage = errors.New("image is empty")

// Normalizer decodes source images and turns them into upright, opaque,
// size-bounded RGB rasters.
type Normalizer struct {
	maxDimension int
}

// NewNormalizer creates a Normalizer that downscales images whose width or
// height exceeds maxDimension. A non-positive value uses DefaultMaxDimension.
func NewNormalizer(maxDimension int) *Normalizer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Normalizer{maxDimension: maxDimension}
}

// Normalize decodes src, applies its EXIF orientation, flattens transparency
// onto white and bounds its dimensions. Any decoding failure is returned as
// a *DecodeError. Missing or malformed orientation metadata is ignored.
func (n *Normalizer) Normalize(ctx context.Context, src Source) (*NormalizedImage, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, &DecodeError{Path: src.String(), Cause: err}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: src.String(), Cause: err}
	}
	if err := imaging.ValidateBounds(cfg.Width, cfg.Height); err != nil {
		return nil, &DecodeError{Path: src.String(), Cause: err}
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: src.String(), Cause: err}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	orientation := imaging.OrientNormal
	if format == "jpeg" || format == "tiff" {
		orientation = imaging.ReadOrientation(data)
	}

	img := imaging.Flatten(decoded)
	img = imaging.Orient(img, orientation)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	img = imaging.Downscale(img, n.maxDimension)

	if img.Rect.Dx() <= 0 || img.Rect.Dy() <= 0 {
		return nil, &DecodeError{Path: src.String(), Cause: fmt.Errorf("decoded image has no pixels (%v)", img.Rect)}
	}

	return &NormalizedImage{Img: img}, nil
}

// readSource returns the encoded bytes of src, checking that a path source
// is an existing regular file first.
func readSource(src Source) ([]byte, error) {
	if src.Data != nil {
		if len(src.Data) == 0 {
			return nil, errEmptyImage
		}
		return src.Data, nil
	}

	if src.Path == "" {
		return nil, ErrInvalidSource
	}
	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidSource, src.Path)
	}
	if info.Size() == 0 {
		return nil, errEmptyImage
	}

	data, err := os.ReadFile(src.Path) // #nosec G304 -- caller-selected input image
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmptyImage
	}
	return data, nil
}
