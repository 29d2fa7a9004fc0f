// Package logging builds the structured loggers used across folio.
//
// The TUI owns the terminal, so interactive sessions log into a rotated file.
// Servers additionally log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
)

// Options configures a logger.
type Options struct {
	Level      string
	Format     string // "text" or "json"
	File       string // empty uses the XDG state path
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Prefix     string
	// Stderr mirrors every entry to stderr.
	Stderr bool
}

// FromConfig converts the [logging] section into Options.
func FromConfig(cfg config.LoggingConfig) Options {
	return Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}
}

// New returns a logger writing into a lumberjack-rotated file. The returned
// closer releases the file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	path := opts.File
	if path == "" {
		p, err := config.GetLogPath()
		if err != nil {
			return nil, nil, fmt.Errorf("logging: resolve log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}

	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(opts.MaxSizeMB, 5),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
		Compress:   true,
	}

	var w io.Writer = rot
	if opts.Stderr {
		w = io.MultiWriter(rot, os.Stderr)
	}
	return newLogger(w, opts), rot, nil
}

// NewWriter returns a logger on an arbitrary writer.
func NewWriter(w io.Writer, opts Options) *log.Logger {
	return newLogger(w, opts)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func newLogger(w io.Writer, opts Options) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
	})
	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// ParseLevel converts a level name into a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
