package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// captureSink is the buffer shared by a TestLogger and every logger derived
// from it through With.
type captureSink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *captureSink) append(entry map[string]any) {
	line, err := json.Marshal(entry)
	if err != nil {
		// NaN や Inf を含む値は JSON にできないので文字列で残す
		for k, v := range entry {
			if _, err := json.Marshal(v); err != nil {
				entry[k] = fmt.Sprint(v)
			}
		}
		line, _ = json.Marshal(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(line)
	s.buf.WriteByte('\n')
}

func (s *captureSink) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// TestLogger records every entry as one JSON line so tests can assert on
// messages and fields such as training.iteration or error.code.
//
//	logger, _ := log.NewTestLogger(log.LevelDebug)
//	pr := polynomial.NewPolynomialRegression(polynomial.WithLogger(logger))
//	_ = pr.Fit(x, y)
//	logger.ContainsMessage("Training completed")
type TestLogger struct {
	sink   *captureSink
	level  Level
	fields map[string]any
}

// NewTestLogger returns a logger capturing entries at or above level, and
// the buffer holding the captured JSON lines.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	sink := &captureSink{}
	return &TestLogger{sink: sink, level: level, fields: map[string]any{}}, &sink.buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, "DEBUG", msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.record(LevelInfo, "INFO", msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.record(LevelWarn, "WARN", msg, fields) }

// Error stores a leading error under ErrAttrKey, like the production backends.
func (t *TestLogger) Error(msg string, fields ...any) {
	if err, rest := splitError(fields); err != nil {
		fields = append([]any{ErrAttrKey, err}, rest...)
	}
	t.record(LevelError, "ERROR", msg, fields)
}

func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]any, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	addPairs(merged, fields)
	return &TestLogger{sink: t.sink, level: t.level, fields: merged}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

func (t *TestLogger) record(level Level, name, msg string, fields []any) {
	if level < t.level {
		return
	}
	entry := map[string]any{"level": name, "message": msg}
	for k, v := range t.fields {
		entry[k] = v
	}
	addPairs(entry, fields)
	t.sink.append(entry)
}

// addPairs copies key/value pairs into dst. Errors are stored by message.
func addPairs(dst map[string]any, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		value := fields[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		dst[fmt.Sprint(fields[i])] = value
	}
}

// GetLogEntries decodes the captured lines. Numbers decode as float64.
func (t *TestLogger) GetLogEntries() ([]map[string]any, error) {
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(t.sink.text()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any entry's message contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if msg, ok := entry["message"].(string); ok && strings.Contains(msg, message) {
			return true
		}
	}
	return false
}

// ContainsField reports whether any entry has key set to value.
func (t *TestLogger) ContainsField(key string, value any) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// TestLoggerProvider is a LoggerProvider backed by a single TestLogger.
type TestLoggerProvider struct {
	logger *TestLogger
}

// NewTestLoggerProvider returns a provider and the buffer its loggers write to.
func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	logger, buffer := NewTestLogger(level)
	return &TestLoggerProvider{logger: logger}, buffer
}

func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.level = level
}
