package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	Terminal bool // Stderr is an interactive terminal
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	fd := os.Stderr.Fd()
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		Terminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// withSyncStderr returns a copy of e whose Stderr serializes writes. Log
// lines from workers and progress lines from the reporting goroutine share it.
func (e *Environment) withSyncStderr() *Environment {
	c := *e
	c.Stderr = zerolog.SyncWriter(e.Stderr)
	return &c
}
