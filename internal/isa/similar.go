package isa

import "sort"

// MaxSuggestionDistance bounds the edit distance of SimilarTo results.
const MaxSuggestionDistance = 2

// SimilarTo returns instruction names within MaxSuggestionDistance edits of
// the upper-cased name, closest first. Equal distances are ordered by name.
func (r *Registry) SimilarTo(name string) []string {
	if name == "" {
		return nil
	}
	unknown := []rune(Upper(name))

	type scored struct {
		name string
		dist int
	}
	var found []scored
	for _, candidate := range r.names {
		d := Levenshtein(unknown, []rune(candidate))
		if d <= MaxSuggestionDistance {
			found = append(found, scored{name: candidate, dist: d})
		}
	}
	// r.names is sorted, stable sort keeps names ordered within a distance
	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out
}

// Levenshtein computes the edit distance between a and b with unit costs for
// insertion, deletion and substitution.
func Levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(a)][len(b)]
}
