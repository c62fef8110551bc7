// Package log provides context-aware logging for prog.
//
// Diagnostics go to the logger's writer (stderr in the CLI) so that stdout
// stays clean for paths that callers pipe into cd.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type ctxKey struct{}

// Logger provides output, warning and verbose debug logging.
// It is safe for concurrent use; sync workers log through the same instance.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. quiet suppresses everything except errors and
// takes precedence over verbose.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a logger writing to io.Discard if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	l.write(fmt.Sprintln(args...))
}

// Debug logs a message with key=value pairs when verbose mode is enabled.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	l.write(formatKV(msg, keyvals) + "\n")
}

// Warn logs a warning with key=value pairs unless quiet.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l.quiet {
		return
	}
	l.write("Warning: " + formatKV(msg, keyvals) + "\n")
}

// Error logs an error with key=value pairs. Errors are never suppressed.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.write("Error: " + formatKV(msg, keyvals) + "\n")
}

// Command logs an external command execution and returns a function that
// records how long it took. Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		l.write(fmt.Sprintf("%s (%s)\n", line, d.Round(time.Millisecond)))
	}
}

// IsVerbose returns true if verbose mode is enabled and not overridden by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func (l *Logger) write(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, s)
}

// formatKV renders msg followed by key=value pairs. A trailing key without
// a value is dropped.
func formatKV(msg string, keyvals []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	return b.String()
}
