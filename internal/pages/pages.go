// Package pages splits a document text into the page units that are
// aligned against each other.
//
// The splitting heuristic is independent of the alignment engine and can be
// replaced through the Splitter interface.
package pages

import (
	"fmt"
	"regexp"
	"strings"
)

// Splitter splits a document into ordered pages.
type Splitter interface {
	Split(text string) []string
}

// DefaultPattern separates pages at blank-line runs or at a line holding
// only a section number such as "12.".
const DefaultPattern = `\n\s*\n|\n\d+\.\s*\n`

// Splitter names accepted by ByName.
const (
	NameRegex     = "regex"
	NameParagraph = "paragraph"
)

// RegexSplitter splits text at every match of a separator pattern.
// Pages are trimmed and empty pages are dropped.
type RegexSplitter struct {
	sep *regexp.Regexp
}

// NewRegexSplitter compiles pattern into a RegexSplitter.
func NewRegexSplitter(pattern string) (*RegexSplitter, error) {
	sep, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid page separator pattern: %w", err)
	}
	return &RegexSplitter{sep: sep}, nil
}

// NewDefaultSplitter returns a RegexSplitter using DefaultPattern.
func NewDefaultSplitter() *RegexSplitter {
	return &RegexSplitter{sep: regexp.MustCompile(DefaultPattern)}
}

// Split implements Splitter.
func (s *RegexSplitter) Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := s.sep.Split(strings.TrimSpace(text), -1)
	return compact(parts)
}

// ParagraphSplitter splits text at blank-line runs only.
type ParagraphSplitter struct{}

// Split implements Splitter.
func (ParagraphSplitter) Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var pages []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				pages = append(pages, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		pages = append(pages, strings.Join(current, "\n"))
	}
	return compact(pages)
}

// ByName returns the splitter registered under name.
// An empty pattern selects DefaultPattern for the regex splitter.
func ByName(name, pattern string) (Splitter, error) {
	switch name {
	case "", NameRegex:
		if pattern == "" {
			return NewDefaultSplitter(), nil
		}
		return NewRegexSplitter(pattern)
	case NameParagraph:
		return ParagraphSplitter{}, nil
	default:
		return nil, fmt.Errorf("unknown page splitter %q (use %q or %q)", name, NameRegex, NameParagraph)
	}
}

// compact trims pages and removes the empty ones.
func compact(parts []string) []string {
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}
