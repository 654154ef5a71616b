package internal

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to name, ignoring case.
// Nothing is suggested when the best match would need more edits than half the name's length.
func Suggest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	needle := strings.ToLower(name)
	best := ""
	bestDistance := -1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = candidate, d
		}
	}

	limit := len([]rune(name)) / 2
	if limit < 2 {
		limit = 2
	}
	if bestDistance > limit {
		return "", false
	}
	return best, true
}
