package linematch

import (
	"fmt"
	"strings"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// LineScore is the match result for one line index.
type LineScore struct {
	// Line is the 1-based line number.
	Line int `json:"line"`

	// Matches is the number of positions holding equal runes.
	Matches int `json:"matches"`

	// Length is the rune length of the longer line.
	Length int `json:"length"`
}

// Percent returns the match percentage of the line.
// Two empty lines match fully.
func (s LineScore) Percent() float64 {
	if s.Length == 0 {
		return 100
	}
	return float64(s.Matches) / float64(s.Length) * 100
}

// Result is the outcome of a line comparison.
type Result struct {
	Lines   []LineScore `json:"lines"`
	Matches int         `json:"matches"`
	Length  int         `json:"length"`
}

// Percent returns the overall match percentage. With no characters at all
// the files are considered identical.
func (r Result) Percent() float64 {
	if r.Length == 0 {
		return 100
	}
	return float64(r.Matches) / float64(r.Length) * 100
}

// Compare scores the lines of a against the lines of b. The shorter input
// is padded with empty lines. With ignoreSpaces, ASCII spaces are removed
// before comparing.
func Compare(a, b []string, ignoreSpaces bool) Result {
	n := max(len(a), len(b))
	res := Result{Lines: make([]LineScore, 0, n)}

	for i := range n {
		l1 := []rune(lineAt(a, i, ignoreSpaces))
		l2 := []rune(lineAt(b, i, ignoreSpaces))

		score := LineScore{Line: i + 1, Length: max(len(l1), len(l2))}
		for j := range min(len(l1), len(l2)) {
			if l1[j] == l2[j] {
				score.Matches++
			}
		}

		res.Lines = append(res.Lines, score)
		res.Matches += score.Matches
		res.Length += score.Length
	}
	return res
}

func lineAt(lines []string, i int, ignoreSpaces bool) string {
	if i >= len(lines) {
		return ""
	}
	if ignoreSpaces {
		return strings.ReplaceAll(lines[i], " ", "")
	}
	return lines[i]
}

// Lines splits text into lines. A final newline does not start a new line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// DocumentReader loads a document from disk.
type DocumentReader interface {
	Read(path string) (model.Document, error)
}

// CompareFiles reads both documents with r and compares their lines.
func CompareFiles(r DocumentReader, pathA, pathB string, ignoreSpaces bool) (Result, error) {
	docA, err := r.Read(pathA)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", pathA, err)
	}
	docB, err := r.Read(pathB)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", pathB, err)
	}
	return Compare(Lines(docA.Text), Lines(docB.Text), ignoreSpaces), nil
}
