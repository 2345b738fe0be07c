package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"go.uber.org/zap"
)

// memPersister is an in-memory Persister with a programmable fault.
type memPersister struct {
	data    []byte
	saves   int
	failFor int // fail the next N saves
}

func (p *memPersister) Load() ([]byte, bool, error) {
	if p.data == nil {
		return nil, false, nil
	}
	return p.data, true, nil
}

func (p *memPersister) Save(data []byte) error {
	if p.failFor > 0 {
		p.failFor--
		return errors.New("disk full")
	}
	p.saves++
	p.data = append([]byte(nil), data...)
	return nil
}

func newStore(t *testing.T) (*catalog.Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	return catalog.Open(p, zap.NewNop()), p
}

func addInput(name, path string) catalog.AddInput {
	return catalog.AddInput{
		Filename: name,
		Path:     path,
		Ext:      ".d64",
		Size:     174848,
		ModTime:  time.Now(),
		Origin:   catalog.OriginDirect,
	}
}

func TestAddEntry_Defaults(t *testing.T) {
	s, p := newStore(t)
	e, err := s.AddEntry(addInput("last_ninja.d64", "games/last_ninja.d64"), catalog.Metadata{}, false)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if e.ID == "" {
		t.Error("entry has no ID")
	}
	if e.DisplayName != "Last Ninja" {
		t.Errorf("DisplayName = %q, want %q", e.DisplayName, "Last Ninja")
	}
	if e.Kind != "disk" {
		t.Errorf("Kind = %q, want disk", e.Kind)
	}
	if e.AddedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if p.saves != 1 {
		t.Errorf("saves = %d, want 1", p.saves)
	}
}

func TestAddEntry_DeferPersist(t *testing.T) {
	s, p := newStore(t)
	if _, err := s.AddEntry(addInput("a.d64", "a.d64"), catalog.Metadata{}, true); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if p.saves != 0 {
		t.Errorf("deferred add should not persist, saves = %d", p.saves)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if p.saves != 1 {
		t.Errorf("saves = %d, want 1 after Commit", p.saves)
	}
	// Commit is idempotent.
	if err := s.Commit(); err != nil {
		t.Fatalf("second Commit: %v", err)
	}
}

func TestCommit_FailureRetainsDocument(t *testing.T) {
	s, p := newStore(t)
	if _, err := s.AddEntry(addInput("a.d64", "a.d64"), catalog.Metadata{}, true); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	p.failFor = 1
	err := s.Commit()
	var se *catalog.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("Commit error = %v, want StorageError", err)
	}
	// Retry succeeds with the document intact.
	if err := s.Commit(); err != nil {
		t.Fatalf("retry Commit: %v", err)
	}
	if len(s.Entries()) != 1 {
		t.Errorf("entries = %d after failed commit, want 1", len(s.Entries()))
	}
}

func TestUpdateEntry(t *testing.T) {
	s, _ := newStore(t)
	e, _ := s.AddEntry(addInput("turrican.d64", "turrican.d64"), catalog.Metadata{}, false)

	year := "1990"
	notes := "works on NTSC"
	before := e.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	updated, err := s.UpdateEntry(e.ID, catalog.Patch{Year: &year, Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if updated.Year != "1990" || updated.Notes != "works on NTSC" {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.DisplayName != "Turrican" {
		t.Errorf("untouched field changed: %q", updated.DisplayName)
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.UpdateEntry("nope", catalog.Patch{})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveEntry(t *testing.T) {
	s, _ := newStore(t)
	e, _ := s.AddEntry(addInput("a.d64", "a.d64"), catalog.Metadata{}, false)

	found, err := s.RemoveEntry(e.ID)
	if err != nil || !found {
		t.Fatalf("RemoveEntry = %v, %v", found, err)
	}
	found, err = s.RemoveEntry(e.ID)
	if err != nil {
		t.Fatalf("second RemoveEntry: %v", err)
	}
	if found {
		t.Error("RemoveEntry found a deleted entry")
	}
}

func TestTags_SetSemantics(t *testing.T) {
	s, p := newStore(t)
	e, _ := s.AddEntry(addInput("a.d64", "a.d64"), catalog.Metadata{}, false)
	savesAfterAdd := p.saves

	got, err := s.AddTag(e.ID, "  Platformer ")
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "platformer" {
		t.Errorf("Tags = %v, want [platformer]", got.Tags)
	}
	if p.saves != savesAfterAdd+1 {
		t.Errorf("AddTag should persist once, saves = %d", p.saves)
	}

	// Re-adding is a no-op: no new persist, no timestamp refresh.
	again, err := s.AddTag(e.ID, "PLATFORMER")
	if err != nil {
		t.Fatalf("AddTag again: %v", err)
	}
	if len(again.Tags) != 1 {
		t.Errorf("duplicate tag added: %v", again.Tags)
	}
	if p.saves != savesAfterAdd+1 {
		t.Errorf("no-op AddTag persisted, saves = %d", p.saves)
	}
	if !again.UpdatedAt.Equal(got.UpdatedAt) {
		t.Error("no-op AddTag refreshed UpdatedAt")
	}

	got, err = s.RemoveTag(e.ID, "platformer")
	if err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v after remove, want empty", got.Tags)
	}
}

func TestSearch(t *testing.T) {
	s, _ := newStore(t)
	ninja, _ := s.AddEntry(catalog.AddInput{
		Filename: "last_ninja.d64", Path: "c64/last_ninja.d64",
		Ext: ".d64", Origin: catalog.OriginDirect,
	}, catalog.Metadata{DisplayName: "Last Ninja", Year: "1987", Publisher: "System 3"}, false)
	_, _ = s.AddEntry(catalog.AddInput{
		Filename: "commando.tap", Path: "c64/commando.tap",
		Ext: ".tap", Origin: catalog.OriginDirect,
	}, catalog.Metadata{DisplayName: "Commando", Year: "1985", Publisher: "Elite"}, false)
	_, _ = s.AddTag(ninja.ID, "classic")

	got := s.Search("ninja", catalog.Filter{Type: "all", Tag: "all"})
	if len(got) != 1 || got[0].DisplayName != "Last Ninja" {
		t.Errorf("query search: got %d results", len(got))
	}

	got = s.Search("", catalog.Filter{Type: ".tap"})
	if len(got) != 1 || got[0].Filename != "commando.tap" {
		t.Errorf("extension filter: got %v", got)
	}

	got = s.Search("", catalog.Filter{Type: "disk"})
	if len(got) != 1 || got[0].Filename != "last_ninja.d64" {
		t.Errorf("kind filter: got %v", got)
	}

	got = s.Search("", catalog.Filter{Tag: "classic"})
	if len(got) != 1 {
		t.Errorf("tag filter: got %d results", len(got))
	}

	got = s.Search("system 3", catalog.Filter{})
	if len(got) != 1 {
		t.Errorf("publisher search: got %d results", len(got))
	}

	got = s.Search("zzz", catalog.Filter{})
	if len(got) != 0 {
		t.Errorf("no-match search: got %d results", len(got))
	}

	// Query AND filter.
	got = s.Search("ninja", catalog.Filter{Type: ".tap"})
	if len(got) != 0 {
		t.Errorf("query+filter should not match: got %d", len(got))
	}
}

func TestImportMerge_Idempotent(t *testing.T) {
	s, _ := newStore(t)
	_, _ = s.AddEntry(addInput("a.d64", "x/a.d64"), catalog.Metadata{}, false)
	_, _ = s.AddEntry(addInput("b.d64", "x/b.d64"), catalog.Metadata{}, false)

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other, _ := newStore(t)
	added, err := other.ImportMerge(data)
	if err != nil {
		t.Fatalf("ImportMerge: %v", err)
	}
	if added != 2 {
		t.Errorf("first import added = %d, want 2", added)
	}
	added, err = other.ImportMerge(data)
	if err != nil {
		t.Fatalf("second ImportMerge: %v", err)
	}
	if added != 0 {
		t.Errorf("second import added = %d, want 0", added)
	}
}

func TestImportMerge_MissingEntries(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.ImportMerge([]byte(`{"version": 3, "settings": {}}`))
	var fe *catalog.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if len(s.Entries()) != 0 {
		t.Error("failed import mutated the catalog")
	}
}

func TestImportMerge_SameNameDifferentPathSurvives(t *testing.T) {
	// The import key is filename:originalPath, weaker than the scan-time
	// normalized key. Two raw-identical names from different paths both stay.
	s, _ := newStore(t)
	_, _ = s.AddEntry(addInput("a.d64", "x/a.d64"), catalog.Metadata{}, false)

	other, _ := newStore(t)
	_, _ = other.AddEntry(addInput("a.d64", "y/a.d64"), catalog.Metadata{}, false)
	data, _ := other.Export()

	added, err := s.ImportMerge(data)
	if err != nil {
		t.Fatalf("ImportMerge: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if len(s.Entries()) != 2 {
		t.Errorf("entries = %d, want 2", len(s.Entries()))
	}
}

func TestImportMerge_SettingsOverlay(t *testing.T) {
	s, _ := newStore(t)
	st := s.Settings()
	st.LibraryDir = "/old/library"
	st.OrganizeOnAdd = true
	if err := s.SetSettings(st); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}

	// Import carries libraryDir only; organizeOnAdd must survive the merge.
	payload := []byte(`{"version": 3, "settings": {"libraryDir": "/new/library"}, "entries": []}`)
	if _, err := s.ImportMerge(payload); err != nil {
		t.Fatalf("ImportMerge: %v", err)
	}
	got := s.Settings()
	if got.LibraryDir != "/new/library" {
		t.Errorf("LibraryDir = %q, want /new/library", got.LibraryDir)
	}
	if !got.OrganizeOnAdd {
		t.Error("OrganizeOnAdd lost in settings merge")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	e, _ := s.AddEntry(addInput("wizball.d64", "games/wizball.d64"),
		catalog.Metadata{DisplayName: "Wizball", Year: "1987", Publisher: "Ocean"}, false)
	_, _ = s.AddTag(e.ID, "shooter")

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	fresh, _ := newStore(t)
	if err := fresh.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := fresh.ImportMerge(data); err != nil {
		t.Fatalf("ImportMerge: %v", err)
	}

	got := fresh.Entries()
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	want, _ := s.ByID(e.ID)
	if got[0].ID != want.ID || got[0].DisplayName != want.DisplayName ||
		got[0].Publisher != want.Publisher || got[0].Year != want.Year ||
		len(got[0].Tags) != 1 || got[0].Tags[0] != "shooter" {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got[0], want)
	}
}

func TestOpen_CorruptDocumentStartsEmpty(t *testing.T) {
	p := &memPersister{data: []byte("{not json")}
	s := catalog.Open(p, zap.NewNop())
	if len(s.Entries()) != 0 {
		t.Error("corrupt document should yield empty catalog")
	}
	// Defaults are reconciled even with nothing loaded.
	if s.Settings().EmulatorCommand == "" {
		t.Error("settings defaults not filled")
	}
}

func TestOpen_FillsSettingsDefaults(t *testing.T) {
	p := &memPersister{data: []byte(`{"version": 1, "settings": {"libraryDir": "/lib"}, "entries": []}`)}
	s := catalog.Open(p, zap.NewNop())
	st := s.Settings()
	if st.LibraryDir != "/lib" {
		t.Errorf("LibraryDir = %q, want /lib", st.LibraryDir)
	}
	if st.EmulatorCommand == "" {
		t.Error("missing settings key not defaulted on load")
	}
}
