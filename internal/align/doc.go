// Package align computes character and word alignments between a reference
// transcription and a hypothesis transcription.
//
// Chars produces a minimum edit distance alignment with a fixed tie-break
// order, so the same pair of strings always yields the same edit script.
// Words produces opcode blocks over the space-joined token sequences using a
// difflib-compatible longest-matching-block diff.
//
// Both functions operate on runes. Lengths, indices and edit counts are in
// Unicode code points, never bytes.
package align
