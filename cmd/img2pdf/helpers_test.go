package main

// Notes:
// - Test helpers shared across CLI tests: an in-memory Environment and
//   generated image fixtures.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-img2pdf/internal/testimg"
)

// testEnv returns an Environment writing to buffers with the given
// environment variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// writeTestImages stores PNGs named after names in dir and returns their
// paths in the same order.
func writeTestImages(t *testing.T, dir string, names ...string) []string {
	t.Helper()

	paths := make([]string, len(names))
	for i, name := range names {
		img := testimg.Solid(40+i, 30, color.RGBA{R: 200, G: uint8(i * 30), B: 50, A: 255})
		format := testimg.PNG
		if strings.HasSuffix(name, ".jpg") {
			format = testimg.JPEG
		}
		paths[i] = testimg.Write(t, dir, name, img, format)
	}
	return paths
}
