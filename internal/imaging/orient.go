package imaging

import (
	"bytes"
	"image"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Orientation is the value of the EXIF orientation tag (0x0112).
type Orientation int

// EXIF orientation values. Each name describes the transform that makes
// the stored raster display upright.
const (
	OrientNormal     Orientation = 1
	OrientFlipH      Orientation = 2
	OrientRotate180  Orientation = 3
	OrientFlipV      Orientation = 4
	OrientTranspose  Orientation = 5
	OrientRotate90   Orientation = 6 // clockwise
	OrientTransverse Orientation = 7
	OrientRotate270  Orientation = 8 // clockwise
)

// Valid reports whether o is one of the eight defined orientations.
func (o Orientation) Valid() bool {
	return o >= OrientNormal && o <= OrientRotate270
}

// SwapsAxes reports whether applying o exchanges width and height.
func (o Orientation) SwapsAxes() bool {
	return o >= OrientTranspose && o <= OrientRotate270
}

// ReadOrientation extracts the EXIF orientation from encoded image data.
// Missing, unreadable or out-of-range metadata yields OrientNormal.
func ReadOrientation(data []byte) Orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return OrientNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientNormal
	}
	v, err := tag.Int(0)
	if err != nil {
		return OrientNormal
	}
	if o := Orientation(v); o.Valid() {
		return o
	}
	return OrientNormal
}

// Orient applies o to src and returns the upright raster. Every transform is
// an exact pixel permutation: nearest-neighbour sampling of an affine map
// whose translations are whole pixels.
func Orient(src *image.RGBA, o Orientation) *image.RGBA {
	if !o.Valid() || o == OrientNormal {
		return src
	}

	w, h := float64(src.Rect.Dx()), float64(src.Rect.Dy())
	dw, dh := src.Rect.Dx(), src.Rect.Dy()
	if o.SwapsAxes() {
		dw, dh = dh, dw
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.NearestNeighbor.Transform(dst, srcToDst(o, w, h), src, src.Rect, draw.Src, nil)
	return dst
}

// srcToDst returns the affine map from source to destination coordinates
// for a w x h source.
func srcToDst(o Orientation, w, h float64) f64.Aff3 {
	switch o {
	case OrientFlipH:
		return f64.Aff3{-1, 0, w, 0, 1, 0}
	case OrientRotate180:
		return f64.Aff3{-1, 0, w, 0, -1, h}
	case OrientFlipV:
		return f64.Aff3{1, 0, 0, 0, -1, h}
	case OrientTranspose:
		return f64.Aff3{0, 1, 0, 1, 0, 0}
	case OrientRotate90:
		return f64.Aff3{0, -1, h, 1, 0, 0}
	case OrientTransverse:
		return f64.Aff3{0, -1, h, -1, 0, w}
	case OrientRotate270:
		return f64.Aff3{0, 1, 0, -1, 0, w}
	default:
		return f64.Aff3{1, 0, 0, 0, 1, 0}
	}
}
