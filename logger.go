package cronexp

import (
	"io"
	"log"
	"log/slog"
	"strings"
	"time"
)

// DiscardLogger can be used by callers to discard all log messages.
// Engines use it unless WithLogger is given.
var DiscardLogger = PrintfLogger(log.New(io.Discard, "", 0))

// Logger is the interface used in this package for logging, so that any backend
// can be plugged in. It is a subset of the github.com/go-logr/logr interface.
type Logger interface {
	// Info logs routine messages about the engine's searches.
	Info(msg string, keysAndValues ...interface{})
	// Error logs an error condition.
	Error(err error, msg string, keysAndValues ...interface{})
}

// Printfer is anything with a log.Logger style Printf method.
type Printfer interface {
	Printf(format string, v ...interface{})
}

// PrintfLogger wraps a Printf-based logger (such as the standard library "log")
// into an implementation of the Logger interface which logs errors only.
func PrintfLogger(l Printfer) Logger {
	return printfLogger{out: l}
}

// VerbosePrintfLogger wraps a Printf-based logger (such as the standard library
// "log") into an implementation of the Logger interface which logs everything.
func VerbosePrintfLogger(l Printfer) Logger {
	return printfLogger{out: l, verbose: true}
}

type printfLogger struct {
	out     Printfer
	verbose bool
}

func (pl printfLogger) Info(msg string, keysAndValues ...interface{}) {
	if pl.verbose {
		pl.emit(msg, keysAndValues)
	}
}

func (pl printfLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	pl.emit(msg, append([]interface{}{"error", err}, keysAndValues...))
}

// emit writes msg followed by logfmt-like key=value pairs. A trailing key
// without a value is dropped.
func (pl printfLogger) emit(msg string, kv []interface{}) {
	var sb strings.Builder
	sb.WriteString("%s")
	args := make([]interface{}, 1, 1+len(kv))
	args[0] = msg
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteString(", %v=%v")
		args = append(args, kv[i], formatValue(kv[i+1]))
	}
	pl.out.Printf(sb.String(), args...)
}

// formatValue renders times as RFC3339 with their offset, so a repeated
// wall clock stays distinguishable in the output.
func formatValue(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return v
}

// SlogLogger adapts log/slog to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger that writes to the given slog.Logger.
// If l is nil, slog.Default() is used.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Info logs routine messages using slog.
func (s *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Error logs an error condition using slog.
func (s *SlogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
