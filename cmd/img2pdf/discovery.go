package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	img2pdf "github.com/alnah/go-img2pdf"
)

// discoverImages expands the positional arguments into an ordered list of
// image paths. Files are kept in the given order and must have a supported
// extension; a directory contributes its supported images (not recursive),
// sorted by name.
func discoverImages(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !img2pdf.IsSupportedImage(arg) {
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, arg)
			}
			paths = append(paths, arg)
			continue
		}

		found, err := imagesInDir(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no supported images in %v", ErrNoInput, args)
	}
	return paths, nil
}

// imagesInDir lists the supported images directly inside dir, sorted by name.
func imagesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !img2pdf.IsSupportedImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

// resolveOutputPath joins a relative output path to the configured default
// directory, if any.
func resolveOutputPath(output, defaultDir string) string {
	if output == "" || defaultDir == "" || filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(defaultDir, output)
}
