// Package applog builds the structured logger the CLI and the telemetry
// processor log through, following the thin *slog.Logger wrapper
// shape of mmp-vice's pkg/log/log.go: a rotating file writer behind
// gopkg.in/natefinch/lumberjack.v2, selectable level, plain stderr when no
// log directory is configured.
package applog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a *slog.Logger at the given level. When dir is empty, logs go
// to stderr as text; otherwise they go to a rotated JSON file under dir,
// mirroring mmp-vice's server-vs-desktop writer split.
func New(dir, level string) *slog.Logger {
	lvl := parseLevel(level)

	if dir == "" {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
		return slog.New(h)
	}

	w := &lumberjack.Logger{
		Filename: filepath.Join(dir, "airdispatch.log"),
		MaxSize:  64, // MB
		MaxAge:   14,
		Compress: true,
	}
	h := slog.NewJSONHandler(io.Writer(w), &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch level {
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

// ForFlight returns a logger that logs at Debug regardless of the base
// logger's configured level when flight matches traceFlight, the
// --trace-flight generalization of the teacher's -trace_bus_id flag. A
// traceFlight of 0 means tracing is disabled and base is returned unchanged.
func ForFlight(base *slog.Logger, flight, traceFlight uint64) *slog.Logger {
	if traceFlight == 0 || flight != traceFlight {
		return base
	}
	return slog.New(traceHandler{Handler: base.Handler()})
}

// traceHandler forces every record through regardless of the wrapped
// handler's configured level, since Handler.Enabled is checked by the
// logger before Handle is ever called.
type traceHandler struct {
	slog.Handler
}

func (traceHandler) Enabled(context.Context, slog.Level) bool { return true }
