package spies

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that keeps every record it handles.
type LogHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
	echo    slog.Handler
}

// NewLogHandlerSpy creates a LogHandlerSpy, with echoToStdout the records are also printed as JSON.
func NewLogHandlerSpy(echoToStdout bool) *LogHandlerSpy {
	spy := &LogHandlerSpy{}
	if echoToStdout {
		spy.echo = slog.NewJSONHandler(os.Stdout, nil)
	}

	return spy
}

// NewLogger wraps a fresh LogHandlerSpy in a slog.Logger and returns both.
func NewLogger() (*slog.Logger, *LogHandlerSpy) {
	handler := NewLogHandlerSpy(false)

	return slog.New(handler), handler
}

func (h *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, record.Clone())
	h.mu.Unlock()

	if h.echo != nil {
		return h.echo.Handle(ctx, record)
	}

	return nil
}

func (h *LogHandlerSpy) Enabled(context.Context, slog.Level) bool { return true }
func (h *LogHandlerSpy) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h *LogHandlerSpy) WithGroup(string) slog.Handler           { return h }

func (h *LogHandlerSpy) HasDebugLogWithMessage(message string) *LogRecordMatcher {
	return h.matching(slog.LevelDebug, message)
}

func (h *LogHandlerSpy) HasInfoLogWithMessage(message string) *LogRecordMatcher {
	return h.matching(slog.LevelInfo, message)
}

func (h *LogHandlerSpy) HasWarnLogWithMessage(message string) *LogRecordMatcher {
	return h.matching(slog.LevelWarn, message)
}

func (h *LogHandlerSpy) HasErrorLogWithMessage(message string) *LogRecordMatcher {
	return h.matching(slog.LevelError, message)
}

func (h *LogHandlerSpy) matching(level slog.Level, message string) *LogRecordMatcher {
	h.mu.Lock()
	defer h.mu.Unlock()

	matcher := &LogRecordMatcher{}
	for _, record := range h.records {
		if record.Level == level && record.Message == message {
			matcher.candidates = append(matcher.candidates, record)
		}
	}

	return matcher
}

// LogRecordMatcher narrows the records with a level and message down by attribute.
type LogRecordMatcher struct {
	candidates []slog.Record
}

// WithDurationMS keeps records with a numeric, non-negative duration_ms attribute.
func (m *LogRecordMatcher) WithDurationMS() *LogRecordMatcher {
	return m.where("duration_ms", func(v slog.Value) bool {
		switch v.Kind() {
		case slog.KindInt64:
			return v.Int64() >= 0
		case slog.KindFloat64:
			return v.Float64() >= 0
		default:
			return false
		}
	})
}

// WithAttribute keeps records whose attribute key renders as value.
func (m *LogRecordMatcher) WithAttribute(key, value string) *LogRecordMatcher {
	return m.where(key, func(v slog.Value) bool { return v.String() == value })
}

func (m *LogRecordMatcher) where(key string, accept func(slog.Value) bool) *LogRecordMatcher {
	kept := m.candidates[:0:0]

	for _, record := range m.candidates {
		matched := false
		record.Attrs(func(attr slog.Attr) bool {
			matched = attr.Key == key && accept(attr.Value)
			return !matched
		})

		if matched {
			kept = append(kept, record)
		}
	}

	m.candidates = kept

	return m
}

// Assert reports whether any record is left.
func (m *LogRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
