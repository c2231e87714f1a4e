package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stats holds one counter per error category.
//
// Every category is always present, defaulting to zero.
type Stats struct {
	CharSubstitution      int
	CharDeletion          int
	CharInsertion         int
	WordMerge             int
	WordSplit             int
	LexicalSubstitution   int
	AbbreviationExpansion int
	WordDeletion          int
	WordInsertion         int
}

// field returns a pointer to the counter of the category, or nil for
// CategoryNone and unknown values.
func (s *Stats) field(c Category) *int {
	switch c {
	case CharSubstitution:
		return &s.CharSubstitution
	case CharDeletion:
		return &s.CharDeletion
	case CharInsertion:
		return &s.CharInsertion
	case WordMerge:
		return &s.WordMerge
	case WordSplit:
		return &s.WordSplit
	case LexicalSubstitution:
		return &s.LexicalSubstitution
	case AbbreviationExpansion:
		return &s.AbbreviationExpansion
	case WordDeletion:
		return &s.WordDeletion
	case WordInsertion:
		return &s.WordInsertion
	default:
		return nil
	}
}

// Add increments the counter of category c by n.
// CategoryNone is ignored.
func (s *Stats) Add(c Category, n int) {
	if f := s.field(c); f != nil {
		*f += n
	}
}

// Count returns the counter of category c.
func (s Stats) Count(c Category) int {
	if f := s.field(c); f != nil {
		return *f
	}
	return 0
}

// Merge adds every counter of other into s.
func (s *Stats) Merge(other Stats) {
	for _, c := range Categories {
		s.Add(c, other.Count(c))
	}
}

// TotalCharsRef returns CharSubstitution + CharDeletion.
func (s Stats) TotalCharsRef() int {
	return s.CharSubstitution + s.CharDeletion
}

// TotalCharsHyp returns CharSubstitution + CharInsertion.
func (s Stats) TotalCharsHyp() int {
	return s.CharSubstitution + s.CharInsertion
}

// Total returns the sum of all counters.
func (s Stats) Total() int {
	total := 0
	for _, c := range Categories {
		total += s.Count(c)
	}
	return total
}

// IsZero reports whether every counter is zero.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// StatEntry is one category/count pair.
type StatEntry struct {
	Category Category
	Count    int
}

// Entries returns all categories with their counts in report order.
func (s Stats) Entries() []StatEntry {
	entries := make([]StatEntry, len(Categories))
	for i, c := range Categories {
		entries[i] = StatEntry{Category: c, Count: s.Count(c)}
	}
	return entries
}

// MarshalJSON writes the counters as an object keyed by category name,
// in report order.
func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(c.String()))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.Count(c)))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by category name.
// Missing keys stay zero; unknown keys are rejected.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Stats{}
	for name, n := range raw {
		c, err := ParseCategory(name)
		if err != nil {
			return err
		}
		s.Add(c, n)
	}
	return nil
}
