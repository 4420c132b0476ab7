package common

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Log levels used across the agent.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger records agent events. Implementations: stdout logger for the CLI,
// ledger-backed logger persisting pass events, no-op fallback.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from the context, falling back to a
// no-op logger so callers never nil-check.
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// StdoutLogger prints events to standard output, filtered by a minimum
// level.
type StdoutLogger struct {
	MinLevel string
}

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

func NewStdoutLogger(minLevel string) *StdoutLogger {
	if _, ok := levelRank[strings.ToUpper(minLevel)]; !ok {
		minLevel = LevelInfo
	}
	return &StdoutLogger{MinLevel: strings.ToUpper(minLevel)}
}

func (l *StdoutLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelRank[level] < levelRank[l.MinLevel] {
		return
	}
	if len(metadata) == 0 {
		fmt.Printf("[%s] %s\n", level, message)
		return
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, metadata[k]))
	}
	fmt.Printf("[%s] %s (%s)\n", level, message, strings.Join(parts, " "))
}
