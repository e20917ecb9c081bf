package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
)

// NewLogger builds the JSON logger. With LOG_FILE set, records are also written to a
// rotated file.
func NewLogger(cfg Config, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return nil, nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	out := stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		}
		out = io.MultiWriter(stdout, rotator)
		closer = rotator
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "dispatch"), closer, nil
}

// NewStdoutLogger is NewLogger on os.Stdout.
func NewStdoutLogger(cfg Config) (*slog.Logger, io.Closer, error) {
	return NewLogger(cfg, os.Stdout)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
