package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// bufferCapacity is the number of entries queued before the oldest is dropped.
const bufferCapacity = 1000

// Logger writes structured entries through an async buffer.
type Logger struct {
	level      Level
	buffer     *Buffer
	baseFields map[string]any
	mu         sync.RWMutex
}

// New creates a new logger with the given minimum level and transporters.
func New(level Level, transporters ...Transporter) *Logger {
	return &Logger{
		level:      level,
		buffer:     NewBuffer(bufferCapacity, transporters...),
		baseFields: make(map[string]any),
	}
}

// SetLevel changes the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// With creates a child logger sharing the buffer, with additional base fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	l.mu.RLock()
	fields := make(map[string]any, len(l.baseFields)+len(keysAndValues)/2)
	for k, v := range l.baseFields {
		fields[k] = v
	}
	level := l.level
	l.mu.RUnlock()

	mergePairs(fields, keysAndValues)

	return &Logger{
		level:      level,
		buffer:     l.buffer,
		baseFields: fields,
	}
}

// Close shuts down the logger and flushes remaining entries.
func (l *Logger) Close() {
	l.buffer.Close()
}

// DroppedCount returns the number of entries lost to buffer overflow.
func (l *Logger) DroppedCount() int64 {
	return l.buffer.DroppedCount()
}

// Shutdown warns about entries lost to overflow, if any, then closes the
// logger.
func (l *Logger) Shutdown() {
	if n := l.DroppedCount(); n > 0 {
		l.Warn("log entries dropped", "count", n)
	}
	l.Close()
}

func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues ...any) {
	l.mu.RLock()
	enabled := l.level.Enables(level)
	l.mu.RUnlock()
	if !enabled {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = caller(3)

	l.mu.RLock()
	for k, v := range l.baseFields {
		entry.Fields[k] = v
	}
	l.mu.RUnlock()

	if ctx != nil {
		entry.RequestID = RequestIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}

	// Call-site fields win over base and context fields.
	entry.With(keysAndValues...)

	l.buffer.Send(*entry)
}

// mergePairs copies alternating key/value arguments into dst.
// Non-string keys and a trailing orphan key are skipped.
func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}

// caller returns the file:line of the logging call site.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Debug logs at Debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(nil, Debug, msg, keysAndValues...)
}

// Info logs at Info level.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(nil, Info, msg, keysAndValues...)
}

// Warn logs at Warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(nil, Warn, msg, keysAndValues...)
}

// Error logs at Error level.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(nil, Error, msg, keysAndValues...)
}

// DebugCtx logs at Debug level with context.
func (l *Logger) DebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Debug, msg, keysAndValues...)
}

// InfoCtx logs at Info level with context.
func (l *Logger) InfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Info, msg, keysAndValues...)
}

// WarnCtx logs at Warn level with context.
func (l *Logger) WarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Warn, msg, keysAndValues...)
}

// ErrorCtx logs at Error level with context.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Error, msg, keysAndValues...)
}

// --- Global Logger ---

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
	discard      = &Logger{
		level:      Error + 1,
		buffer:     NewBuffer(1, noopTransporter{}),
		baseFields: make(map[string]any),
	}
)

// SetDefault sets the global default logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the global logger, or a logger that drops everything if
// none was set.
func Default() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()

	if l == nil {
		return discard
	}
	return l
}

type noopTransporter struct{}

func (noopTransporter) Name() string      { return "noop" }
func (noopTransporter) Write(Entry) error { return nil }
func (noopTransporter) Close() error      { return nil }

// GlobalDebug logs at Debug level using the global logger.
func GlobalDebug(msg string, keysAndValues ...any) {
	Default().log(nil, Debug, msg, keysAndValues...)
}

// GlobalInfo logs at Info level using the global logger.
func GlobalInfo(msg string, keysAndValues ...any) {
	Default().log(nil, Info, msg, keysAndValues...)
}

// GlobalWarn logs at Warn level using the global logger.
func GlobalWarn(msg string, keysAndValues ...any) {
	Default().log(nil, Warn, msg, keysAndValues...)
}

// GlobalError logs at Error level using the global logger.
func GlobalError(msg string, keysAndValues ...any) {
	Default().log(nil, Error, msg, keysAndValues...)
}

// GlobalDebugCtx logs at Debug level with context using the global logger.
func GlobalDebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Debug, msg, keysAndValues...)
}

// GlobalInfoCtx logs at Info level with context using the global logger.
func GlobalInfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Info, msg, keysAndValues...)
}

// GlobalWarnCtx logs at Warn level with context using the global logger.
func GlobalWarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Warn, msg, keysAndValues...)
}

// GlobalErrorCtx logs at Error level with context using the global logger.
func GlobalErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Error, msg, keysAndValues...)
}
