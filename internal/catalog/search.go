package catalog

import "strings"

// Filter narrows search results. Empty or "all" values mean no constraint.
type Filter struct {
	Type string // extension (".tap") or kind ("disk", "tape", "cart")
	Tag  string
	Year string
}

// Search returns entries matching the query text and all filter constraints.
// The query (if non-empty) matches case-insensitively as a substring against
// display name, filename, publisher, notes, or any tag. Filters are AND-ed
// exact-match constraints on top.
func (s *Store) Search(query string, f Filter) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for i := range s.doc.Entries {
		e := &s.doc.Entries[i]
		if !f.matches(e) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (f Filter) matches(e *Entry) bool {
	if c := constraint(f.Type); c != "" {
		if strings.HasPrefix(c, ".") {
			if !strings.EqualFold(e.Ext, c) {
				return false
			}
		} else if !strings.EqualFold(string(e.Kind), c) {
			return false
		}
	}
	if c := constraint(f.Tag); c != "" && !e.HasTag(c) {
		return false
	}
	if c := constraint(f.Year); c != "" && e.Year != c {
		return false
	}
	return true
}

func matchesQuery(e *Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.DisplayName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Filename), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Publisher), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Notes), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(t, q) {
			return true
		}
	}
	return false
}

func constraint(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
