// Package similarity scores how closely two titles match.
package similarity

import (
	"golang.org/x/text/cases"
)

// Levenshtein returns the case-insensitive edit distance between a and b,
// counting single-rune insertions, deletions and substitutions.
func Levenshtein(a, b string) int {
	fold := cases.Fold()
	ra := []rune(fold.String(a))
	rb := []rune(fold.String(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// matrix[i][j] is the distance between rb[:i] and ra[:j].
	matrix := make([][]int, len(rb)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(ra)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1],
				matrix[i][j-1],
				matrix[i-1][j],
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}
