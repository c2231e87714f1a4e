package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// CSV headers.
var (
	errorsHeader        = []string{"page", "ref_context", "hyp_context", "error_type", "category"}
	substitutionsHeader = []string{"ref_char", "hyp_char", "count", "note"}
	pagesHeader         = []string{
		"page", "ref_chars", "hyp_chars", "ref_words", "hyp_words",
		"matches", "substitutions", "deletions", "insertions", "word_distance",
		"cer", "wer",
	}
)

// NoSubstitutionsNote fills the placeholder row of an empty substitution table.
const NoSubstitutionsNote = "no character substitutions - check text normalization"

// ErrorsCSVWriter writes the word-level error log, one row per non-equal block.
type ErrorsCSVWriter struct {
	baseWriter
}

// NewErrorsCSVWriter creates an ErrorsCSVWriter.
func NewErrorsCSVWriter(output io.Writer) *ErrorsCSVWriter {
	return &ErrorsCSVWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *ErrorsCSVWriter) Write(result *model.Result) (int, error) {
	rows := make([][]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		rows = append(rows, []string{
			strconv.Itoa(e.Page),
			e.RefContext,
			e.HypContext,
			e.Op.String(),
			e.Category.String(),
		})
	}
	return writeCSV(w.output, errorsHeader, rows)
}

// SubstitutionsCSVWriter writes the character substitution table ordered
// by frequency. An empty table gets a single placeholder row so the file is
// always well-formed.
type SubstitutionsCSVWriter struct {
	baseWriter
}

// NewSubstitutionsCSVWriter creates a SubstitutionsCSVWriter.
func NewSubstitutionsCSVWriter(output io.Writer) *SubstitutionsCSVWriter {
	return &SubstitutionsCSVWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *SubstitutionsCSVWriter) Write(result *model.Result) (int, error) {
	pairs := result.Substitutions.Sorted()
	if len(pairs) == 0 {
		return writeCSV(w.output, substitutionsHeader, [][]string{{"", "", "0", NoSubstitutionsNote}})
	}

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{string(p.Ref), string(p.Hyp), strconv.Itoa(p.Count), ""})
	}
	return writeCSV(w.output, substitutionsHeader, rows)
}

// PagesCSVWriter writes the raw per-page counts and the derived rates.
type PagesCSVWriter struct {
	baseWriter
}

// NewPagesCSVWriter creates a PagesCSVWriter.
func NewPagesCSVWriter(output io.Writer) *PagesCSVWriter {
	return &PagesCSVWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *PagesCSVWriter) Write(result *model.Result) (int, error) {
	rows := make([][]string, 0, len(result.Pages))
	for _, p := range result.Pages {
		rows = append(rows, []string{
			strconv.Itoa(p.Page),
			strconv.Itoa(p.RefChars),
			strconv.Itoa(p.HypChars),
			strconv.Itoa(p.RefWords),
			strconv.Itoa(p.HypWords),
			strconv.Itoa(p.Matches),
			strconv.Itoa(p.Substitutions),
			strconv.Itoa(p.Deletions),
			strconv.Itoa(p.Insertions),
			strconv.Itoa(p.WordDistance),
			formatRate(p.CER()),
			formatRate(p.WER()),
		})
	}
	return writeCSV(w.output, pagesHeader, rows)
}

// writeCSV writes a header and rows.
func writeCSV(output io.Writer, header []string, rows [][]string) (int, error) {
	cw := &countingWriter{w: output}
	w := csv.NewWriter(cw)
	if err := w.Write(header); err != nil {
		return cw.n, err
	}
	if err := w.WriteAll(rows); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// formatRate formats a percentage with two decimals.
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
