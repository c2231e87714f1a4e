package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// StatsReport is the content of the <prefix>_stats.json file.
type StatsReport struct {
	// ErrorCounts holds one counter per category.
	ErrorCounts model.Stats `json:"error_counts"`

	// TotalCharsRef is char_substitution + char_deletion.
	TotalCharsRef int `json:"total_chars_ref"`

	// TotalCharsHyp is char_substitution + char_insertion.
	TotalCharsHyp int `json:"total_chars_hyp"`
}

// NewStatsReport derives the stats report of a result.
func NewStatsReport(result *model.Result) *StatsReport {
	return &StatsReport{
		ErrorCounts:   result.Stats,
		TotalCharsRef: result.TotalCharsRef(),
		TotalCharsHyp: result.TotalCharsHyp(),
	}
}

// JSONWriter outputs the stats report in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the stats report in JSON format.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	return w.writeJSON(NewStatsReport(result))
}

// writeJSON marshals v and writes it to the output.
// Non-ASCII characters and HTML-sensitive characters are written as-is,
// since transcriptions are full of both.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	// Encode adds the trailing newline.
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// JSONReport is the full result wrapped with output metadata.
type JSONReport struct {
	// Version is the htrdiff version that generated this report.
	Version string `json:"version"`

	// Summary repeats the stats report for quick access.
	Summary *StatsReport `json:"summary"`

	// Result is the full analysis result.
	Result *model.Result `json:"result"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(result *model.Result, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Summary: NewStatsReport(result),
		Result:  result,
	}
}

// FullJSONWriter outputs complete results with the metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the htrdiff version string.
	version string
}

// NewFullJSONWriter creates a writer for complete results with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the full result wrapped with metadata.
func (w *FullJSONWriter) Write(result *model.Result) (int, error) {
	return w.writeJSON(NewJSONReport(result, w.version))
}
