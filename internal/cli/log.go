package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Logger
// =============================================================================

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
// Pipeline warnings (clamped settings, degenerate charts) and, with
// --verbose, the debug output of the observability hooks go through it.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// discardLogger returns a logger that drops everything. The tune command
// uses it while bubbletea owns the terminal, since log lines would tear
// the view.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// =============================================================================
// Progress
// =============================================================================

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing an operation now.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered chart (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Context
// =============================================================================

// ctxKey is the private type for context keys set by this package.
type ctxKey int

// loggerKey is the context key under which the command logger is stored.
const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l. The root command calls it in
// PersistentPreRunE so every subcommand sees the configured logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none was stored (e.g. a command run without the root command).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
