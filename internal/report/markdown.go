package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// markdownErrorRows caps the error log table; the CSV holds the full log.
const markdownErrorRows = 50

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	cw := &countingWriter{w: w.output}
	md := markdown.NewMarkdown(cw)

	w.writeHeader(md, result)
	w.writeCounts(md, result)
	w.writeSubstitutions(md, result)
	w.writePages(md, result)
	w.writeErrors(md, result)
	w.writeFooter(md)

	err := md.Build()
	return cw.n, err
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.Result) {
	md.H1("HTR Error Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Reference", "`" + result.Reference + "`"},
			{"Hypothesis", "`" + result.Hypothesis + "`"},
			{"Date", result.CreatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages compared", strconv.Itoa(result.ProcessedPages)},
			{"Pages (reference / hypothesis)", strconv.Itoa(result.RefPages) + " / " + strconv.Itoa(result.HypPages)},
		},
	})
	md.PlainText("")

	if result.RefPages != result.HypPages {
		md.Warningf("Page counts differ. Only the first %d pages were compared.", result.ProcessedPages)
		md.PlainText("")
	}
}

// writeCounts writes the category table and the distribution chart.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, result *model.Result) {
	md.H2("Error Counts")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Categories)+2)
	for _, e := range result.Stats.Entries() {
		rows = append(rows, []string{e.Category.Label(), "`" + e.Category.String() + "`", strconv.Itoa(e.Count)})
	}
	rows = append(rows,
		[]string{"**Total chars (reference)**", "`total_chars_ref`", "**" + strconv.Itoa(result.TotalCharsRef()) + "**"},
		[]string{"**Total chars (hypothesis)**", "`total_chars_hyp`", "**" + strconv.Itoa(result.TotalCharsHyp()) + "**"},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Error", "Key", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.Stats.IsZero() {
		if result.IsEmpty() {
			md.Cautionf("No pages were compared.")
		} else {
			md.Tip("No differences found.")
		}
		md.PlainText("")
		return
	}
	w.writePieChart(md, result)
}

// writePieChart writes a mermaid pie chart of the category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.Result) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Error Distribution"),
		piechart.WithShowData(true),
	)
	for _, e := range result.Stats.Entries() {
		if e.Count > 0 {
			chart.LabelAndIntValue(e.Category.Label(), uint64(e.Count))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSubstitutions writes the substitution table.
func (w *MarkdownWriter) writeSubstitutions(md *markdown.Markdown, result *model.Result) {
	md.H2("Character Substitutions")
	md.PlainText("")

	pairs := result.Substitutions.Sorted()
	if len(pairs) == 0 {
		md.Note("No character substitutions. Check whether both texts were normalized the same way.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{"`" + string(p.Ref) + "`", "`" + string(p.Hyp) + "`", strconv.Itoa(p.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Reference", "Hypothesis", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePages writes the per-page rates.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, result *model.Result) {
	if len(result.Pages) == 0 {
		return
	}

	md.H2("Pages")
	md.PlainText("")

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
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Chars", "Edits", "CER %", "WER %"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors writes the head of the word error log.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, result *model.Result) {
	if len(result.Errors) == 0 {
		return
	}

	md.H2("Word Errors")
	md.PlainText("")

	errs := result.Errors
	if len(errs) > markdownErrorRows {
		errs = errs[:markdownErrorRows]
	}
	rows := make([][]string, len(errs))
	for i, e := range errs {
		category := e.Category.String()
		if category == "" {
			category = "-"
		}
		rows[i] = []string{
			strconv.Itoa(e.Page),
			codeOrDash(e.RefContext),
			codeOrDash(e.HypContext),
			e.Op.String(),
			category,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Reference", "Hypothesis", "Op", "Category"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(result.Errors) > markdownErrorRows {
		md.Details("Truncated",
			strconv.Itoa(len(result.Errors)-markdownErrorRows)+" more entries are in the errors CSV file.")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by htrdiff*")
}

// codeOrDash wraps s in backticks, or returns "-" for an empty span.
func codeOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}
