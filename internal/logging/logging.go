// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Config controls where and how much is logged
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Sink       string `yaml:"sink"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig keeps the CLI quiet: errors only, to stderr
func DefaultConfig() Config {
	return Config{
		Level:      "error",
		Format:     string(FormatText),
		Sink:       string(SinkStderr),
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: invalid %q", c.Level)
	}
	switch Format(strings.ToLower(c.Format)) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging.format: invalid %q", c.Format)
	}
	switch Sink(strings.ToLower(c.Sink)) {
	case SinkStderr, SinkFile, SinkNone:
	default:
		return fmt.Errorf("logging.sink: invalid %q", c.Sink)
	}
	if Sink(strings.ToLower(c.Sink)) == SinkFile && strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("logging.file: required for the file sink")
	}
	return nil
}

// Init builds a logger from cfg and installs it as the slog default. The
// returned func closes the log file, if any.
func Init(cfg Config, app, version string) (func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	writer, closeFn, err := resolveWriter(cfg)
	if err != nil {
		return nil, err
	}
	logger := New(cfg, writer).With(
		slog.String("app", app),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
	return closeFn, nil
}

// New builds a logger writing to w
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if Format(strings.ToLower(cfg.Format)) == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(cfg Config) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch Sink(strings.ToLower(cfg.Sink)) {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkFile:
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		return lj, lj.Close, nil
	default:
		return os.Stderr, noop, nil
	}
}
