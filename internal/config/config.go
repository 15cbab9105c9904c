// Package config loads conversion settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	img2pdf "github.com/alnah/go-img2pdf"
	"github.com/alnah/go-img2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidValue      = errors.New("invalid config value")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
)

// MaxPathLength bounds path-valued fields.
const MaxPathLength = 4096

// appDir is the directory under the user config dir searched for names.
const appDir = "go-img2pdf"

// Config holds the settings a config file may provide. Zero values mean
// "not set" and leave the library default in place.
type Config struct {
	Workers      int          `yaml:"workers" toml:"workers"`
	MaxDimension int          `yaml:"maxDimension" toml:"max_dimension"`
	Quality      int          `yaml:"quality" toml:"quality"`
	Caption      *bool        `yaml:"caption" toml:"caption"`
	CaptionFont  string       `yaml:"captionFont" toml:"caption_font"`
	Timeout      string       `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "2m"
	Output       OutputConfig `yaml:"output" toml:"output"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"default_dir"` // Directory for relative output paths (empty = working dir)
}

// DefaultConfig returns a configuration with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks that every set field is in range.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d (must be >= 0)", ErrInvalidValue, c.Workers)
	}
	if c.MaxDimension != 0 && (c.MaxDimension < img2pdf.MinMaxDimension || c.MaxDimension > img2pdf.MaxMaxDimension) {
		return fmt.Errorf("%w: maxDimension %d (must be between %d and %d)",
			ErrInvalidValue, c.MaxDimension, img2pdf.MinMaxDimension, img2pdf.MaxMaxDimension)
	}
	if c.Quality != 0 && (c.Quality < img2pdf.MinJPEGQuality || c.Quality > img2pdf.MaxJPEGQuality) {
		return fmt.Errorf("%w: quality %d (must be between %d and %d)",
			ErrInvalidValue, c.Quality, img2pdf.MinJPEGQuality, img2pdf.MaxJPEGQuality)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("captionFont", c.CaptionFont, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength)
}

// TimeoutDuration parses Timeout. An empty Timeout yields 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout %q (must be positive)", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Apply overlays the set fields of c onto base.
func (c *Config) Apply(base img2pdf.Config) img2pdf.Config {
	if c.Workers > 0 {
		base.Workers = c.Workers
	}
	if c.MaxDimension > 0 {
		base.MaxDimension = c.MaxDimension
	}
	if c.Quality > 0 {
		base.JPEGQuality = c.Quality
	}
	if c.Caption != nil {
		base.ShowCaption = *c.Caption
	}
	if c.CaptionFont != "" {
		base.CaptionFont = c.CaptionFont
	}
	return base
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s has %d characters (max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a known extension, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations. Returns error if the file is not found (no silent
// fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := formatOf(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(format, data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path: it has a
// separator or a config file extension.
func isFilePath(s string) bool {
	if fileutil.IsFilePath(s) {
		return true
	}
	_, err := formatOf(s)
	return err == nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, <user config dir>/go-img2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml", ".toml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
