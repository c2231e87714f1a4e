package align

import "github.com/klarakrnjic/Transcribus-project/internal/model"

// Chars returns a minimum edit distance alignment of ref and hyp under unit
// cost for insertion, deletion and substitution. Edits are in left-to-right
// order and the number of non-match edits equals Distance(ref, hyp).
//
// When several optimal alignments exist, the backtrace from the end of both
// strings prefers, in order: a match, a substitution, a deletion, an insertion.
//
// The full (n+1)x(m+1) table is kept for the backtrace, so time and memory
// are O(n*m). This is the dominant cost of a run on long pages.
func Chars(ref, hyp string) []model.CharEdit {
	r := []rune(ref)
	h := []rune(hyp)
	n, m := len(r), len(h)

	if n == 0 && m == 0 {
		return []model.CharEdit{}
	}

	width := m + 1
	dp := make([]int, (n+1)*width)
	for i := 0; i <= n; i++ {
		dp[i*width] = i
	}
	for j := 0; j <= m; j++ {
		dp[j] = j
	}

	for i := 1; i <= n; i++ {
		row := i * width
		prev := (i - 1) * width
		for j := 1; j <= m; j++ {
			cost := 1
			if r[i-1] == h[j-1] {
				cost = 0
			}
			dp[row+j] = min(
				dp[prev+j]+1,
				dp[row+j-1]+1,
				dp[prev+j-1]+cost,
			)
		}
	}

	edits := make([]model.CharEdit, 0, max(n, m))
	i, j := n, m
	for i > 0 || j > 0 {
		cur := dp[i*width+j]
		switch {
		case i > 0 && j > 0 && r[i-1] == h[j-1]:
			edits = append(edits, model.MatchEdit(r[i-1]))
			i--
			j--
		case i > 0 && j > 0 && cur == dp[(i-1)*width+j-1]+1:
			edits = append(edits, model.SubstituteEdit(r[i-1], h[j-1]))
			i--
			j--
		case i > 0 && cur == dp[(i-1)*width+j]+1:
			edits = append(edits, model.DeleteEdit(r[i-1]))
			i--
		default:
			edits = append(edits, model.InsertEdit(h[j-1]))
			j--
		}
	}

	for a, b := 0, len(edits)-1; a < b; a, b = a+1, b-1 {
		edits[a], edits[b] = edits[b], edits[a]
	}
	return edits
}

// Counts tallies the operations of a character alignment.
type Counts struct {
	Matches       int
	Substitutions int
	Deletions     int
	Insertions    int
}

// Distance returns the number of non-match operations.
func (c Counts) Distance() int {
	return c.Substitutions + c.Deletions + c.Insertions
}

// Count tallies the operations in edits.
func Count(edits []model.CharEdit) Counts {
	var c Counts
	for _, e := range edits {
		switch e.Op {
		case model.OpMatch:
			c.Matches++
		case model.OpSubstitute:
			c.Substitutions++
		case model.OpDelete:
			c.Deletions++
		case model.OpInsert:
			c.Insertions++
		}
	}
	return c
}

// Reconstruct rebuilds the reference and hypothesis strings from an alignment.
func Reconstruct(edits []model.CharEdit) (ref, hyp string) {
	r := make([]rune, 0, len(edits))
	h := make([]rune, 0, len(edits))
	for _, e := range edits {
		if e.HasRef {
			r = append(r, e.Ref)
		}
		if e.HasHyp {
			h = append(h, e.Hyp)
		}
	}
	return string(r), string(h)
}
