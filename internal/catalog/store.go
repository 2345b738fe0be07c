package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/blackwell-systems/retroshelf/internal/naming"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the sole owner of the persisted catalog document. All mutation
// goes through it; callers must serialize scan sessions themselves.
type Store struct {
	persist Persister
	log     *zap.Logger
	doc     Document
}

// Open loads the document from the persister. A read failure or malformed
// document is logged and replaced with defaults — loading never blocks
// startup.
func Open(p Persister, log *zap.Logger) *Store {
	s := &Store{persist: p, log: log, doc: defaultDocument()}

	data, ok, err := p.Load()
	if err != nil {
		log.Warn("catalog load failed, starting empty", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("catalog is malformed, starting empty", zap.Error(err))
		return s
	}
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}
	doc.Settings = reconcileSettings(doc.Settings)
	if doc.Version < SchemaVersion {
		log.Info("upgrading catalog schema",
			zap.Int("from", doc.Version), zap.Int("to", SchemaVersion))
		doc.Version = SchemaVersion
	}
	s.doc = doc
	return s
}

// AddInput carries the scan-time facts a new entry is built from.
type AddInput struct {
	Filename      string
	Path          string
	Ext           string
	Size          int64
	ModTime       time.Time
	Origin        Origin
	ContainerPath string
	MemberPath    string
}

// Metadata carries optional display-metadata overrides for a new entry.
type Metadata struct {
	DisplayName string
	Year        string
	Publisher   string
	BoxArtURL   string
}

// AddEntry builds and appends a new entry. With deferPersist the document is
// only mutated in memory — batch callers must Commit later.
func (s *Store) AddEntry(in AddInput, meta Metadata, deferPersist bool) (Entry, error) {
	display := meta.DisplayName
	if display == "" {
		display = naming.DisplayName(in.Filename)
	}
	now := time.Now().UTC()
	e := Entry{
		ID:            uuid.NewString(),
		Filename:      in.Filename,
		OriginalPath:  in.Path,
		Kind:          naming.KindForExt(in.Ext),
		Ext:           strings.ToLower(in.Ext),
		SizeBytes:     in.Size,
		DisplayName:   display,
		Year:          meta.Year,
		Publisher:     meta.Publisher,
		BoxArtURL:     meta.BoxArtURL,
		Tags:          []string{},
		Origin:        in.Origin,
		ContainerPath: in.ContainerPath,
		MemberPath:    in.MemberPath,
		AddedAt:       now,
		UpdatedAt:     now,
	}
	s.doc.Entries = append(s.doc.Entries, e)
	if deferPersist {
		return e, nil
	}
	return e, s.Commit()
}

// Commit flushes the in-memory document unconditionally. Idempotent; a
// failure surfaces as a StorageError and leaves the document intact for a
// retry.
func (s *Store) Commit() error {
	s.doc.Version = SchemaVersion
	s.doc.LastUpdated = time.Now().UTC()
	data, err := marshalDocument(s.doc)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.persist.Save(data); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// Patch holds optional field updates; nil fields are left untouched.
type Patch struct {
	DisplayName *string
	Year        *string
	Publisher   *string
	BoxArtURL   *string
	Notes       *string
}

// UpdateEntry shallow-merges patch fields into the entry, refreshes its
// last-modified time, and persists. Returns ErrNotFound for unknown IDs.
func (s *Store) UpdateEntry(id string, patch Patch) (Entry, error) {
	e := s.byID(id)
	if e == nil {
		return Entry{}, ErrNotFound
	}
	if patch.DisplayName != nil {
		e.DisplayName = *patch.DisplayName
	}
	if patch.Year != nil {
		e.Year = *patch.Year
	}
	if patch.Publisher != nil {
		e.Publisher = *patch.Publisher
	}
	if patch.BoxArtURL != nil {
		e.BoxArtURL = *patch.BoxArtURL
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	e.UpdatedAt = time.Now().UTC()
	return *e, s.Commit()
}

// MarkOrganized records that the entry's file was copied into the managed
// library.
func (s *Store) MarkOrganized(id, libraryPath, sha256 string) (Entry, error) {
	e := s.byID(id)
	if e == nil {
		return Entry{}, ErrNotFound
	}
	e.LibraryPath = libraryPath
	e.SHA256 = sha256
	e.Origin = OriginLibrary
	e.UpdatedAt = time.Now().UTC()
	return *e, s.Commit()
}

// RemoveEntry deletes an entry by ID. found=false is not an error.
func (s *Store) RemoveEntry(id string) (found bool, err error) {
	for i := range s.doc.Entries {
		if s.doc.Entries[i].ID == id {
			s.doc.Entries = append(s.doc.Entries[:i], s.doc.Entries[i+1:]...)
			return true, s.Commit()
		}
	}
	return false, nil
}

// Clear empties the catalog.
func (s *Store) Clear() error {
	s.doc.Entries = []Entry{}
	return s.Commit()
}

// AddTag attaches a tag (lowercased, trimmed) to an entry. Set semantics:
// adding an existing tag is a no-op and does not touch last-modified.
func (s *Store) AddTag(id, tag string) (Entry, error) {
	e := s.byID(id)
	if e == nil {
		return Entry{}, ErrNotFound
	}
	tag = normalizeTag(tag)
	if tag == "" || e.HasTag(tag) {
		return *e, nil
	}
	e.Tags = append(e.Tags, tag)
	e.UpdatedAt = time.Now().UTC()
	return *e, s.Commit()
}

// RemoveTag detaches a tag from an entry; a missing tag is a no-op.
func (s *Store) RemoveTag(id, tag string) (Entry, error) {
	e := s.byID(id)
	if e == nil {
		return Entry{}, ErrNotFound
	}
	tag = normalizeTag(tag)
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			e.UpdatedAt = time.Now().UTC()
			return *e, s.Commit()
		}
	}
	return *e, nil
}

// Entries returns a copy of the entry list in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.doc.Entries))
	copy(out, s.doc.Entries)
	return out
}

// ByID returns the entry with the given ID.
func (s *Store) ByID(id string) (Entry, bool) {
	if e := s.byID(id); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// HasFilename reports whether any entry carries the exact raw filename.
// This is the scan-time duplicate check: raw filename only, not the
// normalized key and not the source path.
func (s *Store) HasFilename(name string) bool {
	for i := range s.doc.Entries {
		if s.doc.Entries[i].Filename == name {
			return true
		}
	}
	return false
}

// Settings returns the current settings sub-record.
func (s *Store) Settings() Settings { return s.doc.Settings }

// SetSettings replaces the settings sub-record and persists.
func (s *Store) SetSettings(st Settings) error {
	s.doc.Settings = reconcileSettings(st)
	return s.Commit()
}

// Export serializes the whole document. The output round-trips through
// ImportMerge without loss.
func (s *Store) Export() ([]byte, error) {
	s.doc.Version = SchemaVersion
	return marshalDocument(s.doc)
}

// ImportMerge merges a previously exported document into the catalog.
// Incoming entries are appended verbatim unless their (filename, original
// path) key already exists; imported settings keys overlay current ones.
// Persists once at the end and returns the count of newly added entries.
func (s *Store) ImportMerge(data []byte) (int, error) {
	var payload struct {
		Version  int             `json:"version"`
		Settings json.RawMessage `json:"settings"`
		Entries  *[]Entry        `json:"entries"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, &FormatError{Reason: "invalid document", Err: err}
	}
	if payload.Entries == nil {
		return 0, &FormatError{Reason: "missing entries list"}
	}

	seen := make(map[string]bool, len(s.doc.Entries))
	for i := range s.doc.Entries {
		seen[mergeKey(&s.doc.Entries[i])] = true
	}

	added := 0
	for _, e := range *payload.Entries {
		key := mergeKey(&e)
		if seen[key] {
			continue
		}
		s.doc.Entries = append(s.doc.Entries, e)
		seen[key] = true
		added++
	}

	if len(payload.Settings) > 0 {
		merged, err := mergeSettings(s.doc.Settings, payload.Settings)
		if err != nil {
			return 0, &FormatError{Reason: "invalid settings", Err: err}
		}
		s.doc.Settings = reconcileSettings(merged)
	}

	return added, s.Commit()
}

// mergeKey is the import dedup key. Deliberately weaker than the scan-time
// normalized-name key: import stays conservative and never drops entries
// whose raw name or path differs.
func mergeKey(e *Entry) string {
	return e.Filename + ":" + e.OriginalPath
}

// mergeSettings overlays the JSON keys present in raw onto cur. Keys absent
// from raw keep their current value.
func mergeSettings(cur Settings, raw json.RawMessage) (Settings, error) {
	base, err := json.Marshal(cur)
	if err != nil {
		return cur, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &m); err != nil {
		return cur, err
	}
	over := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &over); err != nil {
		return cur, err
	}
	for k, v := range over {
		m[k] = v
	}
	combined, err := json.Marshal(m)
	if err != nil {
		return cur, err
	}
	var out Settings
	if err := json.Unmarshal(combined, &out); err != nil {
		return cur, err
	}
	return out, nil
}

func (s *Store) byID(id string) *Entry {
	for i := range s.doc.Entries {
		if s.doc.Entries[i].ID == id {
			return &s.doc.Entries[i]
		}
	}
	return nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func marshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
