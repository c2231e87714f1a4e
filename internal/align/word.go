package align

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// Words aligns two token sequences and returns the opcode blocks covering both.
//
// The tokens of each side are joined with single spaces and the joined
// strings are diffed rune by rune with a difflib SequenceMatcher (autojunk
// enabled, as in Python's difflib). The word content of each block is the
// whitespace-split text of its span on each side.
//
// Because matching works on characters rather than whole tokens, a block
// boundary can fall inside a token when two different tokens share a run of
// characters. Existing evaluation results depend on this behavior; a pure
// token diff would shift the category distribution.
func Words(ref, hyp []string) []model.WordEdit {
	refRunes := []rune(strings.Join(ref, " "))
	hypRunes := []rune(strings.Join(hyp, " "))

	matcher := difflib.NewMatcher(runeElements(refRunes), runeElements(hypRunes))
	opcodes := matcher.GetOpCodes()

	edits := make([]model.WordEdit, 0, len(opcodes))
	for _, oc := range opcodes {
		refWords := strings.Fields(string(refRunes[oc.I1:oc.I2]))
		hypWords := strings.Fields(string(hypRunes[oc.J1:oc.J2]))

		switch oc.Tag {
		case 'e':
			edits = append(edits, model.WordEdit{Ref: refWords, Hyp: hypWords, Op: model.OpMatch})
		case 'd':
			edits = append(edits, model.WordEdit{Ref: refWords, Hyp: []string{}, Op: model.OpDelete})
		case 'i':
			edits = append(edits, model.WordEdit{Ref: []string{}, Hyp: hypWords, Op: model.OpInsert})
		case 'r':
			edits = append(edits, model.WordEdit{Ref: refWords, Hyp: hypWords, Op: model.OpSubstitute})
		}
	}
	return edits
}

// runeElements converts runes to the string elements SequenceMatcher compares.
func runeElements(runes []rune) []string {
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
