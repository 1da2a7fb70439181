// Package log provides a simple wrapper around logrus
// with a familiar API (Infof, Errorf, etc.) and context-aware
// invocation ID tagging.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	toolctx "github.com/sdr4n/toolshed/context"
)

// Logger is the global logger instance
var Logger = logrus.New()

// CustomFormatter implements logrus.Formatter for the desired output format
type CustomFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as [<time>] [LEVEL] [file:line] <message> [inv:<id>]
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "[%s] ", entry.Time.Format(f.TimestampFormat))
	fmt.Fprintf(b, "[%s] ", strings.ToUpper(entry.Level.String()))

	// Walk the stack to find the caller, skipping logrus internals and this wrapper
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "github.com/sirupsen/logrus") ||
			strings.HasSuffix(frame.File, "log/log.go") ||
			strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}

		parts := strings.Split(frame.File, "/")
		fmt.Fprintf(b, "[%s:%d] ", parts[len(parts)-1], frame.Line)
		break
	}

	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		// invocation_id gets a compact tag, all other fields key=value
		if invocationID, ok := entry.Data["invocation_id"].(string); ok && invocationID != "" {
			fmt.Fprintf(b, " [inv:%s]", invocationID)
		}
		for key, value := range entry.Data {
			if key != "invocation_id" {
				fmt.Fprintf(b, " %s=%v", key, value)
			}
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// withInvocationField tags the entry with the invocation ID from the context, if any
func withInvocationField(ctx context.Context) *logrus.Entry {
	invocationID := ""
	if ctx != nil {
		invocationID = toolctx.InvocationIDFromContext(ctx)
	}
	return Logger.WithField("invocation_id", invocationID)
}

// Infof logs formatted message at info level
func Infof(ctx context.Context, format string, args ...interface{}) {
	withInvocationField(ctx).Infof(format, args...)
}

// Info logs a message at info level
func Info(ctx context.Context, args ...interface{}) {
	withInvocationField(ctx).Info(args...)
}

// Debugf logs formatted message at debug level
func Debugf(ctx context.Context, format string, args ...interface{}) {
	withInvocationField(ctx).Debugf(format, args...)
}

// Debug logs a message at debug level
func Debug(ctx context.Context, args ...interface{}) {
	withInvocationField(ctx).Debug(args...)
}

// Warnf logs formatted message at warning level
func Warnf(ctx context.Context, format string, args ...interface{}) {
	withInvocationField(ctx).Warnf(format, args...)
}

// Warn logs a message at warning level
func Warn(ctx context.Context, args ...interface{}) {
	withInvocationField(ctx).Warn(args...)
}

// Errorf logs formatted message at error level
func Errorf(ctx context.Context, format string, args ...interface{}) {
	withInvocationField(ctx).Errorf(format, args...)
}

// Error logs a message at error level
func Error(ctx context.Context, args ...interface{}) {
	withInvocationField(ctx).Error(args...)
}

// Fatalf logs formatted message at fatal level and exits
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	withInvocationField(ctx).Fatalf(format, args...)
}

// SetLevel sets the global log level
func SetLevel(level logrus.Level) {
	Logger.SetLevel(level)
}

// SetLevelName sets the global log level from its string name,
// keeping the current level on parse failure
func SetLevelName(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		Warnf(context.Background(), "Unknown log level %q, keeping %s", name, Logger.GetLevel())
		return
	}
	Logger.SetLevel(level)
}

// SetOutput sets the global log output
func SetOutput(out io.Writer) {
	Logger.SetOutput(out)
}

// Init initializes the logger with default settings
func Init() {
	Logger.SetFormatter(&CustomFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(logrus.InfoLevel)
}
