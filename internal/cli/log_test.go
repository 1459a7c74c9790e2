package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("clamped") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("layout start") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("layout start") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("degenerate chart") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered chart")

	out := buf.String()
	if !strings.Contains(out, "Rendered chart (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the stored logger")
	}
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should fall back to log.Default()")
	}
}

func TestDiscardLogger(t *testing.T) {
	l := discardLogger()
	l.Warn("dropped")
	l.Error("dropped")
}
