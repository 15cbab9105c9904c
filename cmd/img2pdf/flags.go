package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// Flag names referenced when merging settings.
const (
	flagOutput       = "output"
	flagWorkers      = "workers"
	flagMaxDimension = "max-dimension"
	flagQuality      = "quality"
	flagNoCaption    = "no-caption"
	flagCaptionFont  = "caption-font"
	flagTimeout      = "timeout"
	flagConfig       = "config"
)

// commonFlags holds verbosity and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// imageFlags holds the conversion settings that override config and env.
type imageFlags struct {
	workers      int
	maxDimension int
	quality      int
	noCaption    bool
	captionFont  string
}

// cliFlags holds all parsed flags.
type cliFlags struct {
	common  commonFlags
	image   imageFlags
	output  string
	timeout string
	version bool
	help    bool

	// changed records flags set explicitly on the command line.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, flagConfig, "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addImageFlags adds image and page flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.IntVarP(&f.workers, flagWorkers, "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.maxDimension, flagMaxDimension, 0, "downscale images larger than this many pixels")
	fs.IntVar(&f.quality, flagQuality, 0, "JPEG quality of embedded images (1-100)")
	fs.BoolVar(&f.noCaption, flagNoCaption, false, "do not print file names under images")
	fs.StringVar(&f.captionFont, flagCaptionFont, "", "TrueType font for captions")
}

// parseFlags parses command-line arguments (without the program name) and
// returns the flags and positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("img2pdf", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // Usage is printed by run
	f := &cliFlags{changed: make(map[string]bool)}

	fs.StringVarP(&f.output, flagOutput, "o", "", "output PDF file")
	fs.StringVarP(&f.timeout, flagTimeout, "t", "", "conversion timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addImageFlags(fs, &f.image)
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})
	return f, fs.Args(), nil
}
