// Package dxalog is a thin wrapper around log/slog for pipeline-stage
// timing and demotion notices.
//
// No example repo in the pack imports a logging facade (see
// SPEC_FULL.md §2 and DESIGN.md's dxalog entry), so this wraps the
// standard library's structured logger directly rather than reaching for
// an unrelated ecosystem dependency. Recoverable failures from spec.md §7
// (StructureIdFailure, ClusterCompatibilityFailure, CircuitCloseFailure)
// are logged here at Debug level, never surfaced as errors — the taxonomy
// class and subsystem are attached as structured attributes so a caller
// piping logs into a collector can still filter by class.
package dxalog

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/katalvlaran/dxacore/dxaerr"
)

// Logger wraps a *slog.Logger with dxacore-specific helpers.
type Logger struct {
	base *slog.Logger
}

// Default returns a Logger writing text-formatted records to stderr at
// Info level, suitable for CLI callers that don't configure their own
// handler.
func Default() *Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{base: slog.New(h)}
}

// New wraps an existing *slog.Logger, letting callers supply their own
// handler (JSON, level filtering, attached attributes).
func New(base *slog.Logger) *Logger {
	if base == nil {
		return Default()
	}
	return &Logger{base: base}
}

// StageTiming logs a pipeline stage's wall-clock duration at Debug level,
// per spec.md §5's per-stage sequencing.
func (l *Logger) StageTiming(ctx context.Context, stage string, d time.Duration) {
	l.base.DebugContext(ctx, "stage complete", slog.String("stage", stage), slog.Duration("elapsed", d))
}

// Demotion logs a recoverable-failure demotion (spec.md §7's absorbed
// classes) at Debug level: the taxonomy class, the subsystem that
// detected it, and the atom/entity index involved, without ever
// returning an error to the caller.
func (l *Logger) Demotion(ctx context.Context, class dxaerr.Class, subsystem string, index int, reason string) {
	l.base.DebugContext(ctx, "recoverable failure absorbed",
		slog.String("class", class.String()),
		slog.String("subsystem", subsystem),
		slog.Int("index", index),
		slog.String("reason", reason),
	)
}

// Fatal logs a fatal taxonomy error at Error level just before it is
// returned to the pipeline's caller.
func (l *Logger) Fatal(ctx context.Context, err *dxaerr.Error) {
	l.base.ErrorContext(ctx, "pipeline aborted",
		slog.String("class", err.Class.String()),
		slog.String("subsystem", err.Subsystem),
		slog.String("error", err.Err.Error()),
	)
}

// With returns a Logger whose subsequent records carry the given
// attributes, mirroring slog.Logger.With.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{base: l.base.With(args...)}
}
