package cronexp

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogLoggerInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sl := NewSlogLogger(logger)

	sl.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestSlogLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	sl := NewSlogLogger(logger)

	sl.Error(errors.New("test error"), "error message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "error message") {
		t.Errorf("expected output to contain 'error message', got: %s", output)
	}
	if !strings.Contains(output, `error="test error"`) {
		t.Errorf("expected output to contain the error, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestSlogLoggerNilDefault(t *testing.T) {
	// Falls back to slog.Default() instead of panicking.
	sl := NewSlogLogger(nil)
	sl.Info("test with nil logger")
}

func TestSlogLoggerImplementsInterface(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
}

func TestSlogLoggerWithEngine(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	e := NewEngine(WithLogger(logger), WithFoldPolicy(FoldSkip))

	// 01:30 occurs twice on 2019-11-03 and is skipped.
	if _, ok := e.Next(MustParse("0 30 1 * * *"), time.Date(2019, time.November, 3, 0, 0, 0, 0, ny)); !ok {
		t.Fatal("no occurrence")
	}
	out := buf.String()
	for _, want := range []string{`"msg":"skipped local times"`, `"folds":1`, `"direction":"next"`, `"found":true`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

// captureLogger captures log output for testing
type captureLogger struct {
	output string
}

func (cl *captureLogger) Printf(format string, args ...any) {
	cl.output = fmt.Sprintf(format, args...)
}

func TestPrintfLoggerFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		kv   []any
		want string
	}{
		{"message only", "message only", nil, "message only"},
		{"one pair", "message", []any{"key", "value"}, "message, key=value"},
		{"two pairs", "msg", []any{"a", 1, "b", true}, "msg, a=1, b=true"},
		{"dangling key", "msg", []any{"a", 1, "b"}, "msg, a=1"},
		{"percent in message", "100%", []any{"k", "50%"}, "100%, k=50%"},
		{
			"time value",
			"msg",
			[]any{"at", time.Date(2019, time.November, 3, 1, 30, 0, 0, time.FixedZone("EST", -5*3600))},
			"msg, at=2019-11-03T01:30:00-05:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &captureLogger{}
			VerbosePrintfLogger(capture).Info(tt.msg, tt.kv...)
			if capture.output != tt.want {
				t.Errorf("got %q, want %q", capture.output, tt.want)
			}
		})
	}
}

// TestPrintfLoggerNonVerboseDoesNotLog verifies that non-verbose logger
// does not log Info messages (only Error).
func TestPrintfLoggerNonVerboseDoesNotLog(t *testing.T) {
	capture := &captureLogger{}
	logger := PrintfLogger(capture)
	logger.Info("should not appear", "key", "value")

	if capture.output != "" {
		t.Errorf("non-verbose logger should not log Info, got: %q", capture.output)
	}
}

func TestPrintfLoggerError(t *testing.T) {
	t.Run("error with no extra key-values", func(t *testing.T) {
		capture := &captureLogger{}
		PrintfLogger(capture).Error(errors.New("test error"), "error occurred")

		if want := "error occurred, error=test error"; capture.output != want {
			t.Errorf("got %q, want %q", capture.output, want)
		}
	})

	t.Run("error with additional key-values", func(t *testing.T) {
		capture := &captureLogger{}
		PrintfLogger(capture).Error(errors.New("test error"), "error occurred", "key", "value")

		if want := "error occurred, error=test error, key=value"; capture.output != want {
			t.Errorf("got %q, want %q", capture.output, want)
		}
	})
}

func TestDiscardLogger(t *testing.T) {
	// Must accept anything without output or panics.
	DiscardLogger.Info("ignored", "k", "v")
	DiscardLogger.Error(errors.New("ignored"), "ignored")
}
