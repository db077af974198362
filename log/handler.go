// Package log provides a slog handler that writes one JSON LogMessageWire
// record per line, the format shared by the ohoo CLI and plugin host.
package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Handler implements slog.Handler and emits LogMessageWire lines.
type Handler struct {
	mu    *sync.Mutex
	group string // dotted prefix applied to record attrs
	attrs []LogAttrWire
	opts  handlerConfig
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	out       io.Writer
	level     slog.Leveler
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		out:   os.Stderr,
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report. A *slog.LevelVar may be
// passed to change the level at runtime.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithWriter sets the destination. Defaults to os.Stderr.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		c.out = w
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{opts: cfg, mu: &sync.Mutex{}}
}

// New returns a logger backed by a Handler.
func New(opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// ParseLevel accepts the names understood by slog.Level ("debug", "INFO",
// "warn+1", ...).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle serializes record as a single JSON line.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		msg.Source = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	msg.Attrs = append(msg.Attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = appendAttr(msg.Attrs, h.group, attr)
		return true
	})

	line, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal log message: %w", err)
	}
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.opts.out.Write(line)
	return err
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = make([]LogAttrWire, len(h.attrs), len(h.attrs)+len(attrs))
	copy(nh.attrs, h.attrs)
	for _, a := range attrs {
		nh.attrs = appendAttr(nh.attrs, h.group, a)
	}
	return &nh
}

// WithGroup returns a new Handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.group = joinKey(h.group, name)
	return &nh
}

// appendAttr flattens groups into dotted keys. Empty attrs are dropped.
func appendAttr(dst []LogAttrWire, prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		p := joinKey(prefix, attr.Key)
		for _, a := range attr.Value.Group() {
			dst = appendAttr(dst, p, a)
		}
		return dst
	}
	wire := toLogAttrWire(attr)
	wire.Key = joinKey(prefix, attr.Key)
	return append(dst, wire)
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return strings.Join([]string{prefix, key}, ".")
	}
}
