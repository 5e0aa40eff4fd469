// AngelaMos | 2026
// logging.go

package core

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/carterperez-dev/studyplanner/internal/config"
)

// NewLogger builds the process logger. Format "pretty" renders through
// charmbracelet/log for local development; a non-empty File tees output into
// a rotating log file.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "pretty":
		handler = charmlog.NewWithOptions(out, charmlog.Options{
			ReportTimestamp: true,
			Level:           charmlog.Level(level),
			Prefix:          "studyplanner",
		})
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
