package match

import "github.com/agnivade/levenshtein"

// editRatio maps edit distance into [0,1], 1 meaning identical.
func editRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
