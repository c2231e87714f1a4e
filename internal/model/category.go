package model

import "fmt"

// Category is the semantic bucket a discrepancy is assigned to.
//
// The zero value CategoryNone marks a discrepancy the classifier did not
// assign to any bucket (for example a one-to-one substitution of very short
// tokens). It is never counted in Stats.
type Category int

const (
	// CategoryNone marks an unclassified discrepancy.
	CategoryNone Category = iota

	// CharSubstitution is a reference character replaced by another character.
	CharSubstitution

	// CharDeletion is a reference character missing from the hypothesis.
	CharDeletion

	// CharInsertion is a hypothesis character absent from the reference.
	CharInsertion

	// WordMerge is two or more reference words recognized as one word.
	WordMerge

	// WordSplit is one reference word recognized as two or more words.
	WordSplit

	// LexicalSubstitution is one word recognized as a different word.
	LexicalSubstitution

	// AbbreviationExpansion is an abbreviation expanded (or an expanded
	// form abbreviated) by the recognizer.
	AbbreviationExpansion

	// WordDeletion is a residual reference-only word block.
	WordDeletion

	// WordInsertion is a residual hypothesis-only word block.
	WordInsertion
)

// Categories lists every countable category in report order.
var Categories = []Category{
	CharSubstitution,
	CharDeletion,
	CharInsertion,
	WordMerge,
	WordSplit,
	LexicalSubstitution,
	AbbreviationExpansion,
	WordDeletion,
	WordInsertion,
}

// categoryNames maps categories to their report keys.
// The first seven keys are kept identical to earlier evaluation output so
// stats files from older runs stay comparable.
var categoryNames = map[Category]string{
	CharSubstitution:      "char_substitution",
	CharDeletion:          "char_deletion",
	CharInsertion:         "char_insertion",
	WordMerge:             "word_merge",
	WordSplit:             "word_split",
	LexicalSubstitution:   "lexical_substitution",
	AbbreviationExpansion: "abbrev_expansion",
	WordDeletion:          "word_deletion",
	WordInsertion:         "word_insertion",
}

// String returns the report key of the category.
// CategoryNone and unknown values return an empty string.
func (c Category) String() string {
	return categoryNames[c]
}

// Label returns a human-readable name for terminal and Markdown output.
func (c Category) Label() string {
	switch c {
	case CharSubstitution:
		return "Character substitution"
	case CharDeletion:
		return "Character deletion"
	case CharInsertion:
		return "Character insertion"
	case WordMerge:
		return "Word merge"
	case WordSplit:
		return "Word split"
	case LexicalSubstitution:
		return "Lexical substitution"
	case AbbreviationExpansion:
		return "Abbreviation/expansion"
	case WordDeletion:
		return "Word deletion"
	case WordInsertion:
		return "Word insertion"
	default:
		return "Unclassified"
	}
}

// IsCharLevel reports whether the category is produced by the character alignment.
func (c Category) IsCharLevel() bool {
	return c == CharSubstitution || c == CharDeletion || c == CharInsertion
}

// ParseCategory returns the category with the given report key.
func ParseCategory(name string) (Category, error) {
	if name == "" {
		return CategoryNone, nil
	}
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown error category %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
