package img2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/go-pdf/fpdf"
)

// Caption font names.
const (
	captionCoreFont   = "Helvetica"
	captionCoreStyle  = "B"
	captionFontFamily = "caption"
)

// pageImageName is the resource name of the raster inside a fragment.
const pageImageName = "page"

// Renderer turns normalized images into single-page PDF fragments.
type Renderer struct {
	quality     int
	captionFont []byte // TrueType data, nil = core Helvetica-Bold
	created     time.Time
}

// NewRenderer creates a Renderer embedding images as JPEG at the given
// quality. captionFont is optional TrueType font data used for captions
// that need characters outside the core font encoding.
func NewRenderer(quality int, captionFont []byte) *Renderer {
	if quality < MinJPEGQuality || quality > MaxJPEGQuality {
		quality = DefaultJPEGQuality
	}
	return &Renderer{
		quality:     quality,
		captionFont: captionFont,
		created:     time.Now().UTC().Truncate(time.Second),
	}
}

// Render lays out img on a page and returns the page as a standalone PDF.
// A non-empty caption is drawn centered in the band under the image.
// Failures are returned as *RenderError.
func (r *Renderer) Render(ctx context.Context, img *NormalizedImage, caption string) ([]byte, error) {
	if img == nil || img.Img == nil {
		return nil, &RenderError{Cause: errors.New("no image")}
	}

	layout, err := ComputeLayout(img.Width(), img.Height(), caption != "")
	if err != nil {
		return nil, &RenderError{Cause: err}
	}

	jpg := getBuffer()
	defer putBuffer(jpg)
	if err := jpeg.Encode(jpg, img.Img, &jpeg.Options{Quality: r.quality}); err != nil {
		return nil, &RenderError{Cause: fmt.Errorf("encoding page image: %w", err)}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pdf := r.newDocument(layout)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(pageImageName, opts, bytes.NewReader(jpg.Bytes()))
	pdf.ImageOptions(pageImageName, layout.X, layout.Top(), layout.Width, layout.Height, false, opts, 0, "")

	if caption != "" {
		r.drawCaption(pdf, layout, caption)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, &RenderError{Cause: fmt.Errorf("writing page: %w", err)}
	}
	return out.Bytes(), nil
}

// newDocument creates a one-page document sized and turned for layout,
// with no margins or automatic page breaks.
func (r *Renderer) newDocument(layout Layout) *fpdf.Fpdf {
	orientation := "P"
	if layout.Orientation == OrientationLandscape {
		orientation = "L"
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageShortSide, Ht: PageLongSide},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.created)
	pdf.SetCreator("go-img2pdf", false)
	pdf.AddPage()
	return pdf
}

// drawCaption centers caption horizontally on its baseline, measuring the
// rendered string width.
func (r *Renderer) drawCaption(pdf *fpdf.Fpdf, layout Layout, caption string) {
	text := caption
	if r.captionFont != nil {
		pdf.AddUTF8FontFromBytes(captionFontFamily, "", r.captionFont)
		pdf.SetFont(captionFontFamily, "", CaptionFontSize)
	} else {
		pdf.SetFont(captionCoreFont, captionCoreStyle, CaptionFontSize)
		text = pdf.UnicodeTranslatorFromDescriptor("")(caption)
	}

	width := pdf.GetStringWidth(text)
	pdf.Text((layout.PageWidth-width)/2, layout.PageHeight-layout.CaptionBaseline, text)
}
