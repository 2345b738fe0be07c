package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

// resolveEntry finds a catalog entry by full id, unique id prefix, or exact
// display name (case-insensitive).
func resolveEntry(ref string) (catalog.Entry, error) {
	if e, found := store.ByID(ref); found {
		return e, nil
	}

	var matches []catalog.Entry
	lower := strings.ToLower(ref)
	for _, e := range store.Entries() {
		if strings.HasPrefix(e.ID, ref) || strings.ToLower(e.DisplayName) == lower {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return catalog.Entry{}, fmt.Errorf("no entry matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		lines := make([]string, 0, len(matches))
		for _, e := range matches {
			lines = append(lines, fmt.Sprintf("  %s  %s", shortID(e.ID), e.DisplayName))
		}
		return catalog.Entry{}, fmt.Errorf("%q is ambiguous:\n%s", ref, strings.Join(lines, "\n"))
	}
}

func plural(n int, singularFmt, pluralFmt string) string {
	if n == 1 {
		return fmt.Sprintf(singularFmt, n)
	}
	return fmt.Sprintf(pluralFmt, n)
}

// confirm asks a yes/no question on stdin. Empty input means no.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	}
	return false
}
