package scan

import "github.com/blackwell-systems/retroshelf/internal/naming"

// Resolve deduplicates a batch of discovered files. Records are grouped by
// their normalized name key and each group keeps the single record whose
// raw filename scores cleanest; ties keep the first one encountered.
// Output holds one record per group, ordered by first occurrence of the
// group's key in the input. Pure over the whole batch — it cannot stream.
func Resolve(records []FileRecord) []FileRecord {
	type winner struct {
		rec   FileRecord
		score int
	}
	byKey := make(map[string]*winner)
	var order []string

	for _, r := range records {
		key := naming.Normalize(r.Name)
		score := naming.Score(r.Name)
		w, ok := byKey[key]
		if !ok {
			byKey[key] = &winner{rec: r, score: score}
			order = append(order, key)
			continue
		}
		if score < w.score {
			w.rec, w.score = r, score
		}
	}

	out := make([]FileRecord, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key].rec)
	}
	return out
}
