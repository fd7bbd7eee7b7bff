package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// ConsoleHandler is a slog.Handler that writes human-oriented lines:
//
//	[LEVEL] HH:MM:SS component: message key=value
//
// A "component" attribute is lifted out of the attribute list and shown as
// the line prefix instead.
type ConsoleHandler struct {
	w         io.Writer
	level     slog.Level
	mu        *sync.Mutex
	component string
	useColors bool
	attrs     []slog.Attr
}

// NewConsoleHandler creates a console handler writing to w. Colors are
// enabled when w is a terminal.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{
		w:         w,
		level:     slog.LevelInfo,
		mu:        &sync.Mutex{},
		useColors: writerIsTerminal(w),
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level.Level()
	}
	return h
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	h.colored(&b, levelColor(r.Level), "["+levelName(r.Level)+"]")
	b.WriteString(" ")
	h.colored(&b, ansiGray, r.Time.Format("15:04:05"))
	b.WriteString(" ")

	if h.component != "" {
		b.WriteString(h.component)
		b.WriteString(": ")
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		appendAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, a)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *ConsoleHandler) colored(b *strings.Builder, color, s string) {
	if h.useColors {
		b.WriteString(color)
		b.WriteString(s)
		b.WriteString(ansiReset)
		return
	}
	b.WriteString(s)
}

// appendAttr writes one key=value pair, quoting values with whitespace.
func appendAttr(b *strings.Builder, a slog.Attr) {
	if a.Key == "component" {
		return
	}
	v := fmt.Sprint(a.Value.Any())
	if strings.ContainsAny(v, " \t") {
		v = fmt.Sprintf("%q", v)
	}
	fmt.Fprintf(b, " %s=%s", a.Key, v)
}

// WithAttrs returns a handler with the attributes added, lifting any
// "component" attribute into the line prefix.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if a.Key == "component" {
			clone.component = a.Value.String()
			continue
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns the handler unchanged; groups are not rendered in the
// console format.
func (h *ConsoleHandler) WithGroup(string) slog.Handler {
	return h
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiCyan
	default:
		return ansiGray
	}
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
