package img2pdf

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-img2pdf/internal/testimg"
)

// writeImages stores n small PNGs of alternating orientation in dir and
// returns their paths in order.
func writeImages(t testing.TB, dir string, n int) []string {
	t.Helper()

	paths := make([]string, n)
	for i := range n {
		w, h := 60, 40
		if i%2 == 1 {
			w, h = 40, 60
		}
		img := testimg.Solid(w, h, color.RGBA{R: uint8(i * 20), G: 100, B: 200, A: 255})
		paths[i] = testimg.Write(t, dir, fmt.Sprintf("page-%02d.png", i), img, testimg.PNG)
	}
	return paths
}

// pageCount parses data as a PDF and returns its page count.
func pageCount(t testing.TB, data []byte) int {
	t.Helper()

	n, err := CountPages(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("CountPages() error = %v", err)
	}
	return n
}

// normalized returns a w x h normalized image filled with gray.
func normalized(w, h int) *NormalizedImage {
	return &NormalizedImage{Img: testimg.Solid(w, h, color.RGBA{R: 128, G: 128, B: 128, A: 255})}
}

// safeBuffer is a bytes.Buffer safe for concurrent writes from loggers.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *safeBuffer) contains(s string) bool {
	return strings.Contains(b.String(), s)
}
