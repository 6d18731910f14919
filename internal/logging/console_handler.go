package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// consoleHandler renders records as single human-readable lines:
//
//	15:04:05 INF checked show component=tracker show=Frieren new=2
type consoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Level
	prefix []slog.Attr
}

func newConsoleHandler(out io.Writer, level slog.Level) *consoleHandler {
	return &consoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var builder strings.Builder
	if !record.Time.IsZero() {
		builder.WriteString(record.Time.Format("15:04:05"))
		builder.WriteByte(' ')
	}
	builder.WriteString(levelTag(record.Level))
	builder.WriteByte(' ')
	builder.WriteString(record.Message)

	for _, attr := range h.prefix {
		appendAttr(&builder, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&builder, attr)
		return true
	})
	builder.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, builder.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.prefix = append(append([]slog.Attr{}, h.prefix...), attrs...)
	return &clone
}

// WithGroup is accepted but flattened; console output has no nesting.
func (h *consoleHandler) WithGroup(string) slog.Handler {
	return h
}

func appendAttr(builder *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	builder.WriteByte(' ')
	builder.WriteString(attr.Key)
	builder.WriteByte('=')
	value := attr.Value.Resolve().String()
	if strings.ContainsAny(value, " \t") {
		fmt.Fprintf(builder, "%q", value)
	} else {
		builder.WriteString(value)
	}
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}
