// Package testimg generates encoded images for tests: solid and patterned
// rasters in every supported format, and JPEGs carrying an EXIF
// orientation tag.
package testimg

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names accepted by Encode.
const (
	PNG  = "png"
	JPEG = "jpeg"
	GIF  = "gif"
	BMP  = "bmp"
	TIFF = "tiff"
)

// Solid returns a w x h opaque image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// Encode serializes img in the named format.
func Encode(tb testing.TB, img image.Image, format string) []byte {
	tb.Helper()

	var buf bytes.Buffer
	var err error
	switch format {
	case PNG:
		err = png.Encode(&buf, img)
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case GIF:
		err = gif.Encode(&buf, img, nil)
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, nil)
	default:
		tb.Fatalf("testimg: unknown format %q", format)
	}
	if err != nil {
		tb.Fatalf("testimg: encoding %s: %v", format, err)
	}
	return buf.Bytes()
}

// Write encodes img and stores it as dir/name, returning the full path.
func Write(tb testing.TB, dir, name string, img image.Image, format string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Encode(tb, img, format), 0o600); err != nil {
		tb.Fatalf("testimg: writing %s: %v", path, err)
	}
	return path
}

// WithOrientation inserts an APP1 EXIF segment holding only the orientation
// tag right after the SOI marker of jpegData.
func WithOrientation(jpegData []byte, orientation uint16) []byte {
	// TIFF header + IFD0 with a single SHORT entry + next-IFD offset.
	tiffData := make([]byte, 0, 26)
	tiffData = append(tiffData, 'I', 'I', 0x2A, 0x00)
	tiffData = binary.LittleEndian.AppendUint32(tiffData, 8)
	tiffData = binary.LittleEndian.AppendUint16(tiffData, 1)
	tiffData = binary.LittleEndian.AppendUint16(tiffData, 0x0112)
	tiffData = binary.LittleEndian.AppendUint16(tiffData, 3)
	tiffData = binary.LittleEndian.AppendUint32(tiffData, 1)
	tiffData = binary.LittleEndian.AppendUint16(tiffData, orientation)
	tiffData = binary.LittleEndian.AppendUint16(tiffData, 0)
	tiffData = binary.LittleEndian.AppendUint32(tiffData, 0)

	payload := append([]byte("Exif\x00\x00"), tiffData...)

	out := make([]byte, 0, len(jpegData)+len(payload)+4)
	out = append(out, jpegData[:2]...) // SOI
	out = append(out, 0xFF, 0xE1)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)+2))
	out = append(out, payload...)
	out = append(out, jpegData[2:]...)
	return out
}

// OrientedJPEG returns a JPEG of a w x h image whose left half is red and
// right half is blue, tagged with the given EXIF orientation.
func OrientedJPEG(tb testing.TB, w, h int, orientation uint16) []byte {
	tb.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return WithOrientation(Encode(tb, img, JPEG), orientation)
}
