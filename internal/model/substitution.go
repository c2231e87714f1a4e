package model

import (
	"encoding/json"
	"sort"
)

// SubstitutionPair is a (reference rune, hypothesis rune) pair with the
// number of times the reference rune was recognized as the hypothesis rune.
type SubstitutionPair struct {
	Ref   rune
	Hyp   rune
	Count int
}

// substitutionKey identifies a pair.
type substitutionKey struct {
	ref rune
	hyp rune
}

// SubstitutionCounter counts substitution pairs.
// It remembers the order in which pairs were first seen so that Sorted is
// deterministic for pairs with equal counts.
//
// The zero value is ready to use.
type SubstitutionCounter struct {
	index map[substitutionKey]int
	pairs []SubstitutionPair
}

// NewSubstitutionCounter returns an empty counter.
func NewSubstitutionCounter() *SubstitutionCounter {
	return &SubstitutionCounter{}
}

// Add increments the count of the pair (ref, hyp) by n.
func (c *SubstitutionCounter) Add(ref, hyp rune, n int) {
	if c.index == nil {
		c.index = make(map[substitutionKey]int)
	}
	key := substitutionKey{ref: ref, hyp: hyp}
	if i, ok := c.index[key]; ok {
		c.pairs[i].Count += n
		return
	}
	c.index[key] = len(c.pairs)
	c.pairs = append(c.pairs, SubstitutionPair{Ref: ref, Hyp: hyp, Count: n})
}

// Get returns the count of the pair (ref, hyp).
func (c *SubstitutionCounter) Get(ref, hyp rune) int {
	if c == nil || c.index == nil {
		return 0
	}
	if i, ok := c.index[substitutionKey{ref: ref, hyp: hyp}]; ok {
		return c.pairs[i].Count
	}
	return 0
}

// Merge adds every pair of other into c, preserving other's first-seen order
// for pairs c has not seen yet.
func (c *SubstitutionCounter) Merge(other *SubstitutionCounter) {
	if other == nil {
		return
	}
	for _, p := range other.pairs {
		c.Add(p.Ref, p.Hyp, p.Count)
	}
}

// Len returns the number of distinct pairs.
func (c *SubstitutionCounter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pairs)
}

// Total returns the sum of all pair counts.
func (c *SubstitutionCounter) Total() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, p := range c.pairs {
		total += p.Count
	}
	return total
}

// Sorted returns the pairs ordered by count descending.
// Pairs with equal counts keep their first-seen order.
func (c *SubstitutionCounter) Sorted() []SubstitutionPair {
	if c == nil {
		return []SubstitutionPair{}
	}
	out := make([]SubstitutionPair, len(c.pairs))
	copy(out, c.pairs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// substitutionJSON is the serialized form of a pair.
type substitutionJSON struct {
	Ref   string `json:"ref_char"`
	Hyp   string `json:"hyp_char"`
	Count int    `json:"count"`
}

// MarshalJSON writes the pairs in Sorted order.
func (c *SubstitutionCounter) MarshalJSON() ([]byte, error) {
	sorted := c.Sorted()
	out := make([]substitutionJSON, len(sorted))
	for i, p := range sorted {
		out[i] = substitutionJSON{Ref: string(p.Ref), Hyp: string(p.Hyp), Count: p.Count}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads pairs written by MarshalJSON.
func (c *SubstitutionCounter) UnmarshalJSON(data []byte) error {
	var in []substitutionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = SubstitutionCounter{}
	for _, p := range in {
		ref, hyp := []rune(p.Ref), []rune(p.Hyp)
		if len(ref) != 1 || len(hyp) != 1 {
			continue
		}
		c.Add(ref[0], hyp[0], p.Count)
	}
	return nil
}
