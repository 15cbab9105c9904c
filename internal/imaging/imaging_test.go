package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/alnah/go-img2pdf/internal/testimg"
)

func TestValidateBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"normal", 800, 600, false},
		{"zero width", 0, 10, true},
		{"negative height", 10, -1, true},
		{"side at limit", MaxDecodeDimension, 1, false},
		{"side over limit", MaxDecodeDimension + 1, 1, true},
		{"too many pixels", 10000, 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBounds(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBounds(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestFitWithin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h, limit  int
		wantW, wantH int
	}{
		{"landscape over limit", 5000, 4000, 2048, 2048, 1638},
		{"portrait over limit", 4000, 5000, 2048, 1638, 2048},
		{"square over limit", 3000, 3000, 2048, 2048, 2048},
		{"within limit unchanged", 800, 600, 2048, 800, 600},
		{"exactly at limit unchanged", 2048, 100, 2048, 2048, 100},
		{"only height over", 1000, 4096, 2048, 500, 2048},
		{"thin strip keeps one pixel", 100000, 1, 2048, 2048, 1},
		{"non-positive limit disables", 5000, 4000, 0, 5000, 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotW, gotH := FitWithin(tt.w, tt.h, tt.limit)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("FitWithin(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, tt.limit, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("transparent pixels become white", func(t *testing.T) {
		t.Parallel()
		src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
		src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
		src.SetNRGBA(1, 0, color.NRGBA{A: 0})

		got := Flatten(src)
		if c := got.RGBAAt(0, 0); c != (color.RGBA{R: 255, A: 255}) {
			t.Errorf("opaque pixel = %v, want red", c)
		}
		if c := got.RGBAAt(1, 0); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Errorf("transparent pixel = %v, want white", c)
		}
		if !got.Opaque() {
			t.Error("flattened image should be opaque")
		}
	})

	t.Run("half transparent blends with white", func(t *testing.T) {
		t.Parallel()
		src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		src.SetNRGBA(0, 0, color.NRGBA{A: 128})

		c := Flatten(src).RGBAAt(0, 0)
		if c.R < 120 || c.R > 135 || c.R != c.G || c.G != c.B || c.A != 255 {
			t.Errorf("blended pixel = %v, want mid gray", c)
		}
	})

	t.Run("palette with transparent index", func(t *testing.T) {
		t.Parallel()
		pal := color.Palette{color.RGBA{}, color.RGBA{B: 255, A: 255}}
		src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
		src.SetColorIndex(1, 0, 1)

		got := Flatten(src)
		if c := got.RGBAAt(0, 0); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Errorf("transparent index = %v, want white", c)
		}
		if c := got.RGBAAt(1, 0); c != (color.RGBA{B: 255, A: 255}) {
			t.Errorf("opaque index = %v, want blue", c)
		}
	})

	t.Run("non-zero origin is rebased", func(t *testing.T) {
		t.Parallel()
		src := image.NewGray(image.Rect(5, 5, 8, 9))
		got := Flatten(src)
		if got.Rect != image.Rect(0, 0, 3, 4) {
			t.Errorf("Rect = %v, want (0,0)-(3,4)", got.Rect)
		}
	})

	t.Run("opaque RGBA passes through", func(t *testing.T) {
		t.Parallel()
		src := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for i := 3; i < len(src.Pix); i += 4 {
			src.Pix[i] = 255
		}
		if got := Flatten(src); got != src {
			t.Error("expected the same image back")
		}
	})
}

func TestDownscale(t *testing.T) {
	t.Parallel()

	t.Run("large image bounded", func(t *testing.T) {
		t.Parallel()
		src := image.NewRGBA(image.Rect(0, 0, 500, 400))
		got := Downscale(src, 64)
		if got.Rect.Dx() != 64 || got.Rect.Dy() != 51 {
			t.Errorf("size = %dx%d, want 64x51", got.Rect.Dx(), got.Rect.Dy())
		}
	})

	t.Run("small image untouched", func(t *testing.T) {
		t.Parallel()
		src := image.NewRGBA(image.Rect(0, 0, 30, 20))
		if got := Downscale(src, 64); got != src {
			t.Error("expected the same image back")
		}
	})
}

// numbered returns a w x h image where each pixel encodes its position.
func numbered(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func TestOrient(t *testing.T) {
	t.Parallel()

	const w, h = 3, 2

	// dstOf maps a source pixel to where it must land.
	tests := []struct {
		o     Orientation
		dstOf func(x, y int) (int, int)
	}{
		{OrientNormal, func(x, y int) (int, int) { return x, y }},
		{OrientFlipH, func(x, y int) (int, int) { return w - 1 - x, y }},
		{OrientRotate180, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }},
		{OrientFlipV, func(x, y int) (int, int) { return x, h - 1 - y }},
		{OrientTranspose, func(x, y int) (int, int) { return y, x }},
		{OrientRotate90, func(x, y int) (int, int) { return h - 1 - y, x }},
		{OrientTransverse, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }},
		{OrientRotate270, func(x, y int) (int, int) { return y, w - 1 - x }},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("orientation %d", tt.o), func(t *testing.T) {
			t.Parallel()
			src := numbered(w, h)
			got := Orient(src, tt.o)

			wantW, wantH := w, h
			if tt.o.SwapsAxes() {
				wantW, wantH = h, w
			}
			if got.Rect.Dx() != wantW || got.Rect.Dy() != wantH {
				t.Fatalf("size = %dx%d, want %dx%d", got.Rect.Dx(), got.Rect.Dy(), wantW, wantH)
			}

			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					dx, dy := tt.dstOf(x, y)
					if g, want := got.RGBAAt(dx, dy), src.RGBAAt(x, y); g != want {
						t.Errorf("orientation %d: dst(%d,%d) = %v, want src(%d,%d) = %v", tt.o, dx, dy, g, x, y, want)
					}
				}
			}
		})
	}
}

func TestOrient_InvalidIsIdentity(t *testing.T) {
	t.Parallel()
	src := numbered(2, 2)
	for _, o := range []Orientation{0, 9, -1} {
		if got := Orient(src, o); got != src {
			t.Errorf("Orient(%d) should return the source unchanged", o)
		}
	}
}

func TestReadOrientation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Orientation
	}{
		{"no data", nil, OrientNormal},
		{"garbage", []byte("not an image at all"), OrientNormal},
		{"jpeg with rotate 90", jpegWithOrientation(6), OrientRotate90},
		{"jpeg with flip", jpegWithOrientation(2), OrientFlipH},
		{"out of range value", jpegWithOrientation(42), OrientNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ReadOrientation(tt.data); got != tt.want {
				t.Errorf("ReadOrientation() = %d, want %d", got, tt.want)
			}
		})
	}
}

// jpegWithOrientation returns a small JPEG tagged with orientation o.
func jpegWithOrientation(o uint16) []byte {
	return testimg.WithOrientation(jpegBytes, o)
}

var jpegBytes = func() []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, numbered(4, 2), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()
