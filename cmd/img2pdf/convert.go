package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	img2pdf "github.com/alnah/go-img2pdf"
	"github.com/alnah/go-img2pdf/internal/config"
	"github.com/alnah/go-img2pdf/internal/hints"
	"github.com/alnah/go-img2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrNoInput          = errors.New("no input images")
	ErrNoOutput         = errors.New("output path is required (-o)")
	ErrUnsupportedImage = errors.New("unsupported image extension")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
)

// dirPermissions is the mode of created output directories (rwxr-x---).
const dirPermissions = 0o750

// settings is the effective configuration after merging all sources.
type settings struct {
	lib     img2pdf.Config
	timeout time.Duration
	output  string
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	env = env.withSyncStderr()

	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "img2pdf: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "img2pdf %s\n", Version)
		return ExitSuccess
	}

	logger := logging.New(env.Stderr, logging.Level(flags.common.quiet, flags.common.verbose), !env.Terminal)

	if err := runConvert(ctx, positional, flags, logger, env); err != nil {
		hint := hints.ForError(err)
		if errors.Is(err, ErrCreateOutputDir) {
			hint = hints.ForOutputDirectory()
		}
		fmt.Fprintf(env.Stderr, "img2pdf: %v%s\n", err, hint)
		if errors.Is(err, ErrUsage) || errors.Is(err, ErrNoOutput) {
			fmt.Fprintln(env.Stderr, "Run 'img2pdf --help' for usage.")
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert resolves settings and inputs, then converts them into one PDF.
func runConvert(ctx context.Context, positional []string, flags *cliFlags, logger zerolog.Logger, env *Environment) error {
	start := env.Now()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Environ(), env.Stderr)
	}

	s, err := resolveSettings(flags, env)
	if err != nil {
		return err
	}

	paths, err := discoverImages(positional)
	if err != nil {
		return err
	}
	if s.lib.ShowCaption && !flags.common.quiet {
		if hint := hints.ForCaption(baseNames(paths), s.lib.CaptionFont); hint != "" {
			fmt.Fprintf(env.Stderr, "warning: some file names use characters the built-in caption font lacks%s\n", hint)
		}
	}
	logger.Debug().Int("images", len(paths)).Int("workers", img2pdf.ResolveWorkers(s.lib.Workers)).Msg("inputs discovered")

	if dir := filepath.Dir(s.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
		}
	}

	opts := []img2pdf.Option{
		img2pdf.WithConfig(s.lib),
		img2pdf.WithLogger(logger),
	}
	if s.timeout > 0 {
		opts = append(opts, img2pdf.WithTimeout(s.timeout))
	}
	if !flags.common.quiet {
		opts = append(opts, img2pdf.WithProgress(progressPrinter(env)))
	}

	conv, err := img2pdf.NewConverter(opts...)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, paths, s.output)
	if err != nil {
		return err
	}

	printResult(result, env.Now().Sub(start), flags.common.quiet, flags.common.verbose, env)
	return nil
}

// resolveSettings merges defaults, config file, environment and flags, in
// increasing priority.
func resolveSettings(flags *cliFlags, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig(env.Getenv, env.Stderr)

	fileCfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		fileCfg, err = config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	s := &settings{lib: fileCfg.Apply(img2pdf.DefaultConfig())}
	timeout, err := fileCfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	s.timeout = timeout

	applyEnvSettings(envCfg, s)
	if err := applyFlagSettings(flags, s); err != nil {
		return nil, err
	}

	if flags.output == "" {
		return nil, ErrNoOutput
	}
	s.output = resolveOutputPath(flags.output, fileCfg.Output.DefaultDir)
	return s, nil
}

// applyEnvSettings overlays set environment values.
func applyEnvSettings(env *envConfig, s *settings) {
	if env.Workers > 0 {
		s.lib.Workers = env.Workers
	}
	if env.MaxDimension > 0 {
		s.lib.MaxDimension = env.MaxDimension
	}
	if env.Quality > 0 {
		s.lib.JPEGQuality = env.Quality
	}
	if env.Timeout > 0 {
		s.timeout = env.Timeout
	}
}

// applyFlagSettings overlays flags set explicitly on the command line.
func applyFlagSettings(flags *cliFlags, s *settings) error {
	if flags.changed[flagWorkers] {
		s.lib.Workers = flags.image.workers
	}
	if flags.changed[flagMaxDimension] {
		s.lib.MaxDimension = flags.image.maxDimension
	}
	if flags.changed[flagQuality] {
		s.lib.JPEGQuality = flags.image.quality
	}
	if flags.changed[flagNoCaption] {
		s.lib.ShowCaption = !flags.image.noCaption
	}
	if flags.changed[flagCaptionFont] {
		s.lib.CaptionFont = flags.image.captionFont
	}
	if flags.changed[flagTimeout] {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flags.timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flags.timeout)
		}
		s.timeout = d
	}
	return nil
}

// baseNames returns the file name of each path.
func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// progressPrinter reports each progress snapshot on stderr.
func progressPrinter(env *Environment) img2pdf.ProgressFunc {
	return func(p img2pdf.Progress) {
		fmt.Fprintf(env.Stderr, "[%d/%d] %s\n", p.Completed, p.Total, p.Label)
	}
}

// printResult outputs the conversion summary. elapsed covers the whole
// command, discovery included.
func printResult(r *img2pdf.Result, elapsed time.Duration, quiet, verbose bool, env *Environment) {
	if quiet {
		return
	}
	if verbose {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages, %s) in %v\n",
			r.Output, r.Pages, formatBytes(r.Bytes), elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(env.Stdout, "Created %s (%d pages)\n", r.Output, r.Pages)
}

// formatBytes renders a size with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
