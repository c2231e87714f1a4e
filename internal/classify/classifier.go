package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/klarakrnjic/Transcribus-project/internal/align"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// Default threshold values.
const (
	// DefaultMaxMergeDistance is the largest edit distance between the joined
	// tokens of one side and the single token of the other side for a block
	// to count as a merge or split.
	DefaultMaxMergeDistance = 2

	// DefaultAbbreviationRatio is how many times longer the expanded token
	// must be than the abbreviated one.
	DefaultAbbreviationRatio = 1.5

	// DefaultMinTokenLength is the shortest token considered for lexical
	// substitution and abbreviation detection.
	DefaultMinTokenLength = 3
)

// Thresholds are the tunable parameters of the word-level heuristics.
type Thresholds struct {
	MaxMergeDistance  int     `yaml:"maxMergeDistance" toml:"maxMergeDistance" json:"max_merge_distance"`
	AbbreviationRatio float64 `yaml:"abbreviationRatio" toml:"abbreviationRatio" json:"abbreviation_ratio"`
	MinTokenLength    int     `yaml:"minTokenLength" toml:"minTokenLength" json:"min_token_length"`
}

// DefaultThresholds returns the default heuristic parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxMergeDistance:  DefaultMaxMergeDistance,
		AbbreviationRatio: DefaultAbbreviationRatio,
		MinTokenLength:    DefaultMinTokenLength,
	}
}

// Classifier buckets character edits and word blocks into categories.
// A Classifier holds no state besides its thresholds and is safe for
// concurrent use.
type Classifier struct {
	thresholds Thresholds
}

// New creates a Classifier with the given thresholds.
func New(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Thresholds returns the parameters the classifier was built with.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Chars counts substitutions, deletions and insertions and keys every
// substitution by its (reference, hypothesis) rune pair. Matches are ignored.
func (c *Classifier) Chars(edits []model.CharEdit) (model.Stats, *model.SubstitutionCounter) {
	var stats model.Stats
	subs := model.NewSubstitutionCounter()

	for _, e := range edits {
		switch e.Op {
		case model.OpSubstitute:
			stats.Add(model.CharSubstitution, 1)
			subs.Add(e.Ref, e.Hyp, 1)
		case model.OpDelete:
			stats.Add(model.CharDeletion, 1)
		case model.OpInsert:
			stats.Add(model.CharInsertion, 1)
		case model.OpMatch:
		}
	}
	return stats, subs
}

// Word returns the category of a single word block.
// Equal blocks and blocks no heuristic claims return model.CategoryNone.
func (c *Classifier) Word(e model.WordEdit) model.Category {
	if e.IsEqual() {
		return model.CategoryNone
	}

	switch {
	case IsMerge(e.Ref, e.Hyp, c.thresholds.MaxMergeDistance):
		return model.WordMerge
	case IsSplit(e.Ref, e.Hyp, c.thresholds.MaxMergeDistance):
		return model.WordSplit
	}

	if len(e.Ref) == 1 && len(e.Hyp) == 1 {
		ref, hyp := e.Ref[0], e.Hyp[0]
		if runeLen(ref) >= c.thresholds.MinTokenLength && runeLen(hyp) >= c.thresholds.MinTokenLength {
			if IsAbbreviation(ref, hyp, c.thresholds.AbbreviationRatio) {
				return model.AbbreviationExpansion
			}
			return model.LexicalSubstitution
		}
	}

	// Residual buckets use the raw block tag. This also absorbs blocks whose
	// spans hold only whitespace and therefore carry no tokens.
	switch e.Op {
	case model.OpDelete:
		return model.WordDeletion
	case model.OpInsert:
		return model.WordInsertion
	default:
		return model.CategoryNone
	}
}

// Words tallies the categories of all non-equal blocks.
func (c *Classifier) Words(edits []model.WordEdit) model.Stats {
	var stats model.Stats
	for _, e := range edits {
		stats.Add(c.Word(e), 1)
	}
	return stats
}

// IsMerge reports whether several reference tokens were recognized as one
// hypothesis token: at least two reference tokens, exactly one hypothesis
// token, and the reference tokens joined without separator are within
// maxDist edits of it.
func IsMerge(ref, hyp []string, maxDist int) bool {
	if len(ref) < 2 || len(hyp) != 1 {
		return false
	}
	return align.StringDistance(strings.Join(ref, ""), hyp[0]) <= maxDist
}

// IsSplit reports whether one reference token was recognized as several
// hypothesis tokens. It mirrors IsMerge.
func IsSplit(ref, hyp []string, maxDist int) bool {
	if len(ref) != 1 || len(hyp) < 2 {
		return false
	}
	return align.StringDistance(ref[0], strings.Join(hyp, "")) <= maxDist
}

// IsAbbreviation reports whether one token is an abbreviation of the other:
// the longer token must exceed ratio times the shorter token's length, and
// the shorter token must occur within the first len(shorter)+2 runes of the
// longer one. Empty tokens never qualify.
func IsAbbreviation(ref, hyp string, ratio float64) bool {
	refLen, hypLen := runeLen(ref), runeLen(hyp)
	if refLen == 0 || hypLen == 0 {
		return false
	}

	if float64(hypLen) > float64(refLen)*ratio && strings.Contains(runePrefix(hyp, refLen+2), ref) {
		return true
	}
	if float64(refLen) > float64(hypLen)*ratio && strings.Contains(runePrefix(ref, hypLen+2), hyp) {
		return true
	}
	return false
}

// runeLen returns the length of s in runes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
