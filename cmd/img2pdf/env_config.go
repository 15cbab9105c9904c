package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	envPrefix       = "IMG2PDF_"
	envConfigPath   = "IMG2PDF_CONFIG"
	envWorkers      = "IMG2PDF_WORKERS"
	envMaxDimension = "IMG2PDF_MAX_DIMENSION"
	envQuality      = "IMG2PDF_QUALITY"
	envTimeout      = "IMG2PDF_TIMEOUT"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath   string        // IMG2PDF_CONFIG: config file name or path
	Workers      int           // IMG2PDF_WORKERS: parallel workers
	MaxDimension int           // IMG2PDF_MAX_DIMENSION: downscale threshold
	Quality      int           // IMG2PDF_QUALITY: JPEG quality
	Timeout      time.Duration // IMG2PDF_TIMEOUT: conversion timeout
}

// knownEnvVars lists valid IMG2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:   true,
	envWorkers:      true,
	envMaxDimension: true,
	envQuality:      true,
	envTimeout:      true,
}

// loadEnvConfig reads configuration from environment variables. Values that
// do not parse are reported on warn and ignored.
func loadEnvConfig(getenv func(string) string, warn io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv(envConfigPath),
	}

	cfg.Workers = envPositiveInt(getenv, envWorkers, warn)
	cfg.MaxDimension = envPositiveInt(getenv, envMaxDimension, warn)
	cfg.Quality = envPositiveInt(getenv, envQuality, warn)

	if timeout := getenv(envTimeout); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(warn, "warning: ignoring %s=%q (want a positive duration like 2m)\n", envTimeout, timeout)
		}
	}

	return cfg
}

// envPositiveInt parses a positive integer variable, 0 when unset or invalid.
func envPositiveInt(getenv func(string) string, name string, warn io.Writer) int {
	raw := getenv(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		fmt.Fprintf(warn, "warning: ignoring %s=%q (want a positive integer)\n", name, raw)
		return 0
	}
	return n
}

// warnUnknownEnvVars logs warnings for unrecognized IMG2PDF_* variables.
// Helps catch typos like IMG2PDF_WORKER instead of IMG2PDF_WORKERS.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
