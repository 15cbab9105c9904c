package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

const (
	// MaxDecodeDimension caps width/height accepted from a decoder to avoid
	// huge allocations when a header lies about the image size.
	MaxDecodeDimension = 32768
	// MaxDecodePixels bounds the total pixel count (roughly 64MP) which keeps
	// RGBA buffers under 256 MB.
	MaxDecodePixels int64 = 64 * 1024 * 1024
)

// ValidateBounds rejects empty or oversized images before they are decoded.
func ValidateBounds(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image bounds invalid (%d x %d)", width, height)
	}
	if width > MaxDecodeDimension || height > MaxDecodeDimension {
		return fmt.Errorf("image dimension exceeds limit (%d x %d)", width, height)
	}
	pixels := int64(width) * int64(height)
	if pixels > MaxDecodePixels {
		return fmt.Errorf("image pixel count %d exceeds limit %d", pixels, MaxDecodePixels)
	}
	return nil
}

// Flatten composites src onto an opaque white canvas and returns the result
// as RGBA. Opaque RGBA images with a zero origin are returned as is.
func Flatten(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Opaque() {
		return rgba
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// FitWithin returns the largest size that keeps the aspect ratio of w x h
// with both sides at most limit. The longer side becomes exactly limit and
// the shorter side is floored (minimum 1). Sizes already within the limit
// are returned unchanged: images are never enlarged.
func FitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, int(int64(h)*int64(limit)/int64(w)))
	}
	return max(1, int(int64(w)*int64(limit)/int64(h))), limit
}

// Downscale resamples src so neither side exceeds limit, using a Catmull-Rom
// filter. src is returned unchanged when it already fits.
func Downscale(src *image.RGBA, limit int) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	nw, nh := FitWithin(w, h, limit)
	if nw == w && nh == h {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Rect, draw.Src, nil)
	return dst
}
