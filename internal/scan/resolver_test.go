package scan_test

import (
	"testing"

	"github.com/blackwell-systems/retroshelf/internal/scan"
)

func recs(names ...string) []scan.FileRecord {
	out := make([]scan.FileRecord, len(names))
	for i, n := range names {
		out[i] = scan.FileRecord{Name: n, Path: n}
	}
	return out
}

func TestResolve_PicksLowestScore(t *testing.T) {
	got := scan.Resolve(recs("Turrican.d64", "Turrican (1990).d64", "turrican_v2.d64"))
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "Turrican.d64" {
		t.Errorf("winner = %q, want Turrican.d64", got[0].Name)
	}
}

func TestResolve_FirstWinsOnTie(t *testing.T) {
	// Identical filenames in different directories score identically.
	in := []scan.FileRecord{
		{Name: "Frogger.d64", Path: "a/Frogger.d64"},
		{Name: "Frogger.d64", Path: "b/Frogger.d64"},
	}
	got := scan.Resolve(in)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Path != "a/Frogger.d64" {
		t.Errorf("tie should keep first encountered, got %q", got[0].Path)
	}
}

func TestResolve_OrderFollowsFirstOccurrence(t *testing.T) {
	got := scan.Resolve(recs(
		"Wizball.d64",
		"Frogger [crack].d64",
		"wizball (1987).d64",
		"Frogger.d64",
	))
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "Wizball.d64" {
		t.Errorf("got[0] = %q, want Wizball.d64", got[0].Name)
	}
	if got[1].Name != "Frogger.d64" {
		t.Errorf("got[1] = %q, want Frogger.d64 (later, cleaner variant)", got[1].Name)
	}
}

func TestResolve_Empty(t *testing.T) {
	if got := scan.Resolve(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d", len(got))
	}
}

func TestResolve_DistinctKeysAllSurvive(t *testing.T) {
	got := scan.Resolve(recs("Uridium.d64", "Paradroid.d64", "Commando.tap"))
	if len(got) != 3 {
		t.Errorf("expected 3 records, got %d", len(got))
	}
}
