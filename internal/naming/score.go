package naming

import "regexp"

var (
	reScorePenalty = regexp.MustCompile(`(?i)crack|trainer|fix|alt|hack`)
	reCleanBase    = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
)

// Score rates how "clean" a raw filename is; lower wins deduplication.
// Base score is the filename length. Every bracket or parenthesis character
// adds 10, a crack/trainer/fix/alt/hack marker anywhere adds 50, and a
// strictly clean filename (alphanumerics, spaces, hyphens, underscores plus
// a recognized extension) subtracts 20. The magnitudes are part of the
// dedup contract — see the resolver tests before changing them.
func Score(filename string) int {
	score := len(filename)
	for _, r := range filename {
		switch r {
		case '[', ']', '(', ')':
			score += 10
		}
	}
	if reScorePenalty.MatchString(filename) {
		score += 50
	}
	if base, _, ok := splitExt(filename); ok && reCleanBase.MatchString(base) {
		score -= 20
	}
	return score
}
