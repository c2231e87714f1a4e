package model

// CharEdit is one step of a character alignment.
// For OpDelete only Ref is present, for OpInsert only Hyp is present,
// for OpMatch and OpSubstitute both are present.
type CharEdit struct {
	Ref    rune
	Hyp    rune
	HasRef bool
	HasHyp bool
	Op     Operation
}

// MatchEdit returns an OpMatch edit for the rune c.
func MatchEdit(c rune) CharEdit {
	return CharEdit{Ref: c, Hyp: c, HasRef: true, HasHyp: true, Op: OpMatch}
}

// SubstituteEdit returns an OpSubstitute edit replacing ref with hyp.
func SubstituteEdit(ref, hyp rune) CharEdit {
	return CharEdit{Ref: ref, Hyp: hyp, HasRef: true, HasHyp: true, Op: OpSubstitute}
}

// DeleteEdit returns an OpDelete edit for the reference rune ref.
func DeleteEdit(ref rune) CharEdit {
	return CharEdit{Ref: ref, HasRef: true, Op: OpDelete}
}

// InsertEdit returns an OpInsert edit for the hypothesis rune hyp.
func InsertEdit(hyp rune) CharEdit {
	return CharEdit{Hyp: hyp, HasHyp: true, Op: OpInsert}
}

// WordEdit is one opcode block of a word alignment.
// Either side may be empty for OpDelete/OpInsert. A block may span several
// tokens on each side.
type WordEdit struct {
	Ref []string  `json:"ref_words"`
	Hyp []string  `json:"hyp_words"`
	Op  Operation `json:"operation"`
}

// IsEqual reports whether the block is an equal run.
func (w WordEdit) IsEqual() bool {
	return w.Op == OpMatch
}
