// Package logging builds the application's structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"lumetric/internal/config"
)

// NewLogger returns a slog logger configured from the application
// config. In production, output goes to stdout and a size-rotated file
// under the logs directory; elsewhere, stdout only.
func NewLogger(cfg *config.Config) *slog.Logger {
	var output io.Writer = os.Stdout
	if cfg.IsProduction() {
		output = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogsDirectory, cfg.AppName+".log"),
			MaxSize:    cfg.LogsMaxSizeInMb,
			MaxBackups: cfg.LogsMaxBackups,
			MaxAge:     cfg.LogsMaxAgeInDays,
			Compress:   true,
		})
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: toSlogLevel(cfg.LogLevel),
	})
	return slog.New(handler)
}

func toSlogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
