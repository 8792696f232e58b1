package schema

import (
	"sort"
	"strings"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// suggest returns the candidates closest to name by case-insensitive edit
// distance, nearest first. Candidates further than a third of the name
// length (at least one edit) are dropped.
func suggest(name string, candidates []string) []string {
	limit := max(1, len(name)/3)

	type scored struct {
		name string
		dist int
	}

	var hits []scored

	for _, c := range candidates {
		d := levenshtein(strings.ToLower(name), strings.ToLower(c))
		if d <= limit {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}

		return hits[i].name < hits[j].name
	})

	var out []string
	for i := 0; i < len(hits) && i < maxSuggestions; i++ {
		out = append(out, hits[i].name)
	}

	return out
}

// levenshtein computes the edit distance between two strings.
// Two rows are kept instead of the full matrix.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
