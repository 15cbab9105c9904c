package img2pdf

import (
	"fmt"
	"math"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Page geometry in PDF points (1/72 inch). Pages are A4, turned to match
// the image.
const (
	PageShortSide   = 595.28
	PageLongSide    = 841.89
	MarginX         = 20.0 // Left and right margin
	CaptionBand     = 60.0 // Space reserved at the bottom for the caption
	CaptionBaseline = 15.0 // Caption baseline above the page bottom
	CaptionFontSize = 12.0
)

// Layout is the placement of one image on its page. Coordinates use the PDF
// convention: origin at the bottom-left corner, y growing upwards.
type Layout struct {
	Orientation string
	PageWidth   float64
	PageHeight  float64
	Scale       float64 // <= 1, images are never enlarged

	// Image rectangle.
	X, Y          float64
	Width, Height float64

	CaptionBand     float64 // 0 when no caption is drawn
	CaptionBaseline float64
}

// ComputeLayout chooses the page orientation and fits a width x height
// pixel image on it, keeping the aspect ratio. The image is centered
// horizontally on the page and vertically in the space above the caption
// band (the band is only reserved when caption is true). One pixel maps to
// one point at scale 1.
func ComputeLayout(width, height int, caption bool) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	l := Layout{
		Orientation: OrientationPortrait,
		PageWidth:   PageShortSide,
		PageHeight:  PageLongSide,
	}
	if width > height {
		l.Orientation = OrientationLandscape
		l.PageWidth, l.PageHeight = PageLongSide, PageShortSide
	}

	if caption {
		l.CaptionBand = CaptionBand
		l.CaptionBaseline = CaptionBaseline
	}

	available := l.PageHeight - l.CaptionBand
	w, h := float64(width), float64(height)
	l.Scale = math.Min(math.Min((l.PageWidth-2*MarginX)/w, available/h), 1)

	l.Width = w * l.Scale
	l.Height = h * l.Scale
	l.X = (l.PageWidth - l.Width) / 2
	l.Y = l.CaptionBand + (available-l.Height)/2

	if l.Width <= 0 || l.Height <= 0 || math.IsNaN(l.X) || math.IsNaN(l.Y) {
		return Layout{}, fmt.Errorf("degenerate layout for %dx%d image", width, height)
	}
	return l, nil
}

// Top returns the distance from the top page edge to the image's top edge,
// for writers whose origin is the top-left corner.
func (l Layout) Top() float64 {
	return l.PageHeight - l.Y - l.Height
}
