package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// Config file formats.
const (
	formatYAML = "yaml"
	formatTOML = "toml"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("nil or empty data")
	ErrNilDestination = errors.New("nil destination pointer")
	ErrInputTooLarge  = errors.New("input exceeds maximum size")
)

// formatOf picks the decoder from the file extension.
func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .yaml, .yml or .toml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// decodeStrict unmarshals data in the given format, rejecting unknown fields.
func decodeStrict(format string, data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	switch format {
	case formatYAML:
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
	case formatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}
