package align

// Distance returns the unit-cost Levenshtein distance between a and b.
// It keeps two rows only, so memory is O(min(len(a), len(b))).
func Distance[T comparable](a, b []T) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, x := range a {
		cur[0] = i + 1
		for j, y := range b {
			cost := 1
			if x == y {
				cost = 0
			}
			cur[j+1] = min(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// StringDistance returns the Levenshtein distance between two strings in runes.
func StringDistance(a, b string) int {
	return Distance([]rune(a), []rune(b))
}
