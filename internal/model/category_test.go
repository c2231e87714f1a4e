package model

import (
	"encoding/json"
	"testing"
)

// TestCategoryString tests the report keys of every category.
func TestCategoryString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		category Category
		expected string
	}{
		{CharSubstitution, "char_substitution"},
		{CharDeletion, "char_deletion"},
		{CharInsertion, "char_insertion"},
		{WordMerge, "word_merge"},
		{WordSplit, "word_split"},
		{LexicalSubstitution, "lexical_substitution"},
		{AbbreviationExpansion, "abbrev_expansion"},
		{WordDeletion, "word_deletion"},
		{WordInsertion, "word_insertion"},
		{CategoryNone, ""},
		{Category(999), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.category.Label(), func(t *testing.T) {
			t.Parallel()
			if tc.category.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.category.String(), tc.expected)
			}
		})
	}
}

// TestParseCategory tests that every report key parses back to its category.
func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}

	if _, err := ParseCategory("word_teleport"); err == nil {
		t.Error("expected error for unknown category")
	}
}

// TestCategoryIsCharLevel tests the character-level predicate.
func TestCategoryIsCharLevel(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		want := c == CharSubstitution || c == CharDeletion || c == CharInsertion
		if c.IsCharLevel() != want {
			t.Errorf("%s.IsCharLevel() = %v, want %v", c, c.IsCharLevel(), want)
		}
	}
}

// TestOperationText tests the legacy tags of operations.
func TestOperationText(t *testing.T) {
	t.Parallel()

	ops := map[Operation]string{
		OpMatch:      "=",
		OpSubstitute: "S",
		OpDelete:     "D",
		OpInsert:     "I",
	}
	for op, tag := range ops {
		if op.String() != tag {
			t.Errorf("%d.String() = %q, want %q", op, op.String(), tag)
		}
		var parsed Operation
		if err := parsed.UnmarshalText([]byte(tag)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", tag, err)
		}
		if parsed != op {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tag, parsed, op)
		}
	}

	var op Operation
	if err := op.UnmarshalText([]byte("MERGE")); err == nil {
		t.Error("expected error for unknown tag")
	}
}

// TestErrorRecordJSON tests that records serialize with readable tags.
func TestErrorRecordJSON(t *testing.T) {
	t.Parallel()

	rec := ErrorRecord{
		Page:       2,
		RefContext: "do mu",
		HypContext: "domu",
		Op:         OpSubstitute,
		Category:   WordMerge,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"page":2,"ref_context":"do mu","hyp_context":"domu","error_type":"S","category":"word_merge"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
