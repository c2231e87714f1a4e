package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// DefaultMaxValueRunes is the rune budget for a single string attribute.
const DefaultMaxValueRunes = 80

// Ellipsis marks a clipped value.
const Ellipsis = "…"

// lineBreaks escapes line breaks so one record stays on one line.
var lineBreaks = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`, "\t", `\t`)

// ClipHandler wraps an slog.Handler and clips long string attributes.
// Newlines inside string values are escaped and values longer than
// MaxValueRunes are cut at a rune boundary and suffixed with Ellipsis.
type ClipHandler struct {
	// handler is the underlying slog handler that receives clipped records.
	handler slog.Handler

	// maxRunes is the rune budget per string value. Zero disables clipping.
	maxRunes int
}

// NewClipHandler creates a ClipHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
// A negative maxRunes is treated as zero (escape only, never clip).
func NewClipHandler(handler slog.Handler, maxRunes int) *ClipHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ClipHandler{handler: handler, maxRunes: max(maxRunes, 0)}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ClipHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clips the record's attributes and passes it to the underlying handler.
func (h *ClipHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(h.clipAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *ClipHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clipped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clipped[i] = h.clipAttr(a)
	}
	return &ClipHandler{handler: h.handler.WithAttrs(clipped), maxRunes: h.maxRunes}
}

// WithGroup returns a new handler with the given group name.
func (h *ClipHandler) WithGroup(name string) slog.Handler {
	return &ClipHandler{handler: h.handler.WithGroup(name), maxRunes: h.maxRunes}
}

// clipAttr clips a single attribute, recursively handling groups.
func (h *ClipHandler) clipAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		clipped := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			clipped[i] = h.clipAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clipped...)}
	case slog.KindString:
		return slog.String(a.Key, Clip(a.Value.String(), h.maxRunes))
	default:
		return a
	}
}

// Clip escapes line breaks in s and shortens it to at most maxRunes runes
// plus Ellipsis. A maxRunes of zero only escapes.
func Clip(s string, maxRunes int) string {
	s = lineBreaks.Replace(s)
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}

// levelFor maps the verbose flag to a minimum level.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text slog.Logger with clipping.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFor(verbose)}
	return slog.New(NewClipHandler(slog.NewTextHandler(w, opts), DefaultMaxValueRunes))
}

// NewJSONLogger creates a JSON slog.Logger with clipping.
// It suits runs whose log output is consumed by other tools.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFor(verbose)}
	return slog.New(NewClipHandler(slog.NewJSONHandler(w, opts), DefaultMaxValueRunes))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
