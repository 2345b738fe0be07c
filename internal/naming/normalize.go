package naming

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reBracketGroup = regexp.MustCompile(`\[[^\]]*\]`)
	reParenGroup   = regexp.MustCompile(`\([^)]*\)`)
	reVersion      = regexp.MustCompile(`(?i)_v[0-9]+`)
	reModifier     = regexp.MustCompile(`(?i)(^|[\s._-])(crack|fixed|alt|trainer|ntsc|pal)\b`)
	reTrailingYear = regexp.MustCompile(`[\s._-]*(19|20)[0-9]{2}$`)
	reSeparators   = regexp.MustCompile(`[\s._-]+`)
)

// Normalize derives the canonical comparison key for a filename: the
// recognized extension, release-group tags, version suffixes, known modifier
// words, and a trailing year are stripped, separator runs collapse to single
// spaces, and the result is lowercased. Deterministic and pure; re-applying
// it to its own output is a no-op.
func Normalize(filename string) string {
	base, _, _ := splitExt(filename)
	base = reBracketGroup.ReplaceAllString(base, "")
	base = reParenGroup.ReplaceAllString(base, "")
	base = reVersion.ReplaceAllString(base, "")
	base = reModifier.ReplaceAllString(base, "")
	base = strings.TrimSpace(base)
	base = reTrailingYear.ReplaceAllString(base, "")
	base = reSeparators.ReplaceAllString(base, " ")
	return strings.ToLower(strings.TrimSpace(base))
}

// DisplayName derives the human-facing title from a filename. Less
// aggressive than Normalize on purpose: only the extension and
// bracket/paren tag groups are dropped, so distinguishing text like version
// suffixes survives. Separators become spaces and each word is capitalized.
func DisplayName(filename string) string {
	base, _, _ := splitExt(filename)
	base = reBracketGroup.ReplaceAllString(base, "")
	base = reParenGroup.ReplaceAllString(base, "")
	base = reSeparators.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	words := strings.Fields(base)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
