package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: img2pdf [flags] <image|dir>... -o <output.pdf>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert images into one PDF, one page per image, in the given order.")
	fmt.Fprintln(w, "Directories are expanded to the images they contain, sorted by name.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  image    PNG, JPEG, GIF, BMP, TIFF or WebP file")
	fmt.Fprintln(w, "  dir      Directory of images (not recursive)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF file (required)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --max-dimension <n>   Downscale images larger than n pixels (default 2048)")
	fmt.Fprintln(w, "      --quality <n>         JPEG quality of embedded images, 1-100 (default 85)")
	fmt.Fprintln(w, "      --no-caption          Do not print file names under images")
	fmt.Fprintln(w, "      --caption-font <path> TrueType font for non-Latin file names")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  IMG2PDF_CONFIG, IMG2PDF_WORKERS, IMG2PDF_MAX_DIMENSION,")
	fmt.Fprintln(w, "  IMG2PDF_QUALITY, IMG2PDF_TIMEOUT")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  img2pdf scans/ -o scans.pdf")
	fmt.Fprintln(w, "  img2pdf cover.jpg photos/ back.png -o album.pdf --no-caption")
	fmt.Fprintln(w, "  img2pdf -w 8 --quality 70 --max-dimension 1600 shots/ -o shots.pdf")
}
