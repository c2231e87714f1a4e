package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// DefaultTopSubstitutions is how many substitution pairs the terminal
// summary lists.
const DefaultTopSubstitutions = 10

// SimpleWriter outputs a human-readable summary for terminal display.
// Tables use rounded borders on a terminal and ASCII otherwise.
type SimpleWriter struct {
	baseWriter

	// style is the table style.
	style table.Style

	// topSubs limits the substitution table.
	topSubs int

	// verbose adds the per-page table.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithStyle overrides the table style.
func WithStyle(style table.Style) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.style = style
	}
}

// WithTopSubstitutions limits the substitution table to n rows.
// Zero hides the table.
func WithTopSubstitutions(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n >= 0 {
			w.topSubs = n
		}
	}
}

// WithVerbose enables the per-page table.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		style:      StyleFor(output),
		topSubs:    DefaultTopSubstitutions,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeCounts(&sb, result)
	w.writeSubstitutions(&sb, result)
	if w.verbose {
		w.writePages(&sb, result)
	}

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.Result) {
	fmt.Fprintf(sb, "Reference:   %s\n", result.Reference)
	fmt.Fprintf(sb, "Hypothesis:  %s\n", result.Hypothesis)
	fmt.Fprintf(sb, "Pages:       %d compared (reference %d, hypothesis %d)\n",
		result.ProcessedPages, result.RefPages, result.HypPages)
	if result.RunID != "" {
		fmt.Fprintf(sb, "Run:         %s\n", result.RunID)
	}
	sb.WriteString("\n")
}

// writeCounts writes the category table.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, result *model.Result) {
	rows := make([][]string, 0, len(model.Categories)+2)
	for _, e := range result.Stats.Entries() {
		rows = append(rows, []string{e.Category.Label(), e.Category.String(), strconv.Itoa(e.Count)})
	}
	rows = append(rows,
		[]string{"Total chars (reference)", "total_chars_ref", strconv.Itoa(result.TotalCharsRef())},
		[]string{"Total chars (hypothesis)", "total_chars_hyp", strconv.Itoa(result.TotalCharsHyp())},
	)

	sb.WriteString(RenderTable(w.style,
		[]string{"Error", "Key", "Count"},
		rows,
		[]Alignment{AlignLeft, AlignLeft, AlignRight},
	))
	sb.WriteString("\n\n")
}

// writeSubstitutions writes the most frequent substitution pairs.
func (w *SimpleWriter) writeSubstitutions(sb *strings.Builder, result *model.Result) {
	if w.topSubs == 0 {
		return
	}

	pairs := result.Substitutions.Sorted()
	if len(pairs) == 0 {
		sb.WriteString("No character substitutions.\n\n")
		return
	}
	if len(pairs) > w.topSubs {
		pairs = pairs[:w.topSubs]
	}

	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{string(p.Ref), string(p.Hyp), strconv.Itoa(p.Count)}
	}
	sb.WriteString(RenderTable(w.style,
		[]string{"Reference", "Hypothesis", "Count"},
		rows,
		[]Alignment{AlignLeft, AlignLeft, AlignRight},
	))
	sb.WriteString("\n\n")
}

// writePages writes the per-page error rates.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.Result) {
	if len(result.Pages) == 0 {
		return
	}

	rows := make([][]string, len(result.Pages))
	for i, p := range result.Pages {
		rows[i] = []string{
			strconv.Itoa(p.Page),
			strconv.Itoa(p.RefChars),
			strconv.Itoa(p.CharEdits()),
			formatRate(p.CER()),
			formatRate(p.WER()),
		}
	}
	sb.WriteString(RenderTable(w.style,
		[]string{"Page", "Chars", "Edits", "CER %", "WER %"},
		rows,
		[]Alignment{AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	))
	sb.WriteString("\n\n")
}
