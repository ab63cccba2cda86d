// Package logging provides a fixed-width slog handler for CLI output.
//
// Records are rendered on one line as
//
//	LEVEL   YYYY-MM-DD HH:MM:SS  TITLE MESSAGE key=value ...
//
// where TITLE is the value of the "title" attribute ("-" when absent).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// TitleKey is the attribute key rendered in the title column.
const TitleKey = "title"

const timeLayout = "2006-01-02 15:04:05"

// Options configures a Handler.
type Options struct {
	// Level is the minimum level to emit. Defaults to slog.LevelInfo.
	Level slog.Leveler

	// Now overrides the clock. Used for testing.
	Now func() time.Time
}

// Handler is a slog.Handler writing fixed-width lines.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	now   func() time.Time
	title string
	attrs []slog.Attr
	group string
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{
		w:     w,
		mu:    &sync.Mutex{},
		level: slog.LevelInfo,
		now:   time.Now,
		title: "-",
	}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		if opts.Now != nil {
			h.now = opts.Now
		}
	}
	return h
}

// New returns a logger writing fixed-width lines to w with the given title.
func New(w io.Writer, level slog.Level, title string) *slog.Logger {
	logger := slog.New(NewHandler(w, &Options{Level: level}))
	if title != "" {
		logger = logger.With(TitleKey, title)
	}
	return logger
}

// Enabled reports whether records at level are emitted.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	title := h.title
	var sb strings.Builder
	for _, a := range h.attrs {
		writeAttr(&sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TitleKey && h.group == "" {
			title = a.Value.String()
			return true
		}
		writeAttr(&sb, h.qualify(a))
		return true
	})

	line := fmt.Sprintf("%-7s %s  %s %s%s\n", r.Level.String(), ts.Format(timeLayout), title, r.Message, sb.String())

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// WithAttrs returns a handler carrying attrs on every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	for _, a := range attrs {
		if a.Key == TitleKey && h.group == "" {
			h2.title = a.Value.String()
			continue
		}
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return h2
}

// WithGroup returns a handler prefixing subsequent attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	if h2.group != "" {
		h2.group += "." + name
	} else {
		h2.group = name
	}
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	return &h2
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

func writeAttr(sb *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := a.Key
		if prefix != "" {
			prefix += "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, slog.Attr{Key: prefix + ga.Key, Value: ga.Value})
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"=") {
		v = fmt.Sprintf("%q", v)
	}
	sb.WriteString(v)
}

// ParseLevel parses a level name such as "debug", "INFO" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
