package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/apilinks/internal/config"
	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

// newLogger builds the run logger. Records go to the configured log file and,
// with verbose set, to stderr as well. The returned closer is nil when no
// file was opened.
func newLogger(cfg config.LoggingConfig, verbose bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var (
		writers []io.Writer
		closer  io.Closer
	)

	if cfg.File != "" && cfg.File != config.LogFileDisabled {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open log file").
				WithContext("path", cfg.File).
				Build()
		}
		writers = append(writers, f)
		closer = f
	}
	if verbose {
		writers = append(writers, stderr)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	level := parseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer, nil
}

func parseLevel(level config.LogLevel) slog.Level {
	switch config.NormalizeLogLevel(string(level)) {
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
