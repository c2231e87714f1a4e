// Package normalize prepares raw transcription text for comparison.
//
// Gold-standard and recognized transcriptions differ in conventions that are
// not recognition errors: line numbering, editorial brackets, digits, letter
// case and whitespace. Normalizer removes them so that only recognition
// differences remain. The alignment engine assumes its input has already
// been through this step.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// lineNumbers matches a leading "12." at the start of a line.
	lineNumbers = regexp.MustCompile(`(?m)^\s*\d+\.\s*`)

	digits = regexp.MustCompile(`\d+`)

	brackets = regexp.MustCompile(`[\[\]\(\)\{\}<>]`)

	whitespace = regexp.MustCompile(`\s+`)
)

// Normalizer lowercases and cleans transcription text.
type Normalizer struct {
	lower cases.Caser
}

// New creates a Normalizer using the lowercase rules of tag.
// Use language.Und for language-neutral folding.
func New(tag language.Tag) *Normalizer {
	return &Normalizer{lower: cases.Lower(tag)}
}

// Normalize returns the cleaned text: NFC composed, leading line numbers,
// digits and brackets removed, lowercased, whitespace runs collapsed to one
// space and trimmed.
//
// Normalizer is not safe for concurrent use because the underlying Caser
// keeps state; create one per goroutine.
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFC.String(text)
	text = lineNumbers.ReplaceAllString(text, "")
	text = digits.ReplaceAllString(text, "")
	text = brackets.ReplaceAllString(text, "")
	text = n.lower.String(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
