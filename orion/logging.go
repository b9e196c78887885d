package orion

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oliverbestmann/walker/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging installs the default slog logger. If a log file is
// configured, the returned closer must be closed on exit.
func SetupLogging(cfg config.LoggingConfig) (io.Closer, error) {
	return setupLogging(cfg, os.Stderr)
}

func setupLogging(cfg config.LoggingConfig, stderr io.Writer) (io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var closer io.Closer = nopCloser{}

	out := stderr
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}

		out = io.MultiWriter(stderr, rotating)
		closer = rotating
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})

	slog.SetDefault(slog.New(handler))

	return closer, nil
}
