package catalog

import (
	"time"

	"github.com/blackwell-systems/retroshelf/internal/naming"
)

// SchemaVersion is the current Document schema. Older documents are upgraded
// in place on load; unknown fields are dropped.
const SchemaVersion = 3

// Origin records where a cataloged file came from.
type Origin string

const (
	OriginDirect  Origin = "direct"
	OriginArchive Origin = "archive-member"
	OriginLibrary Origin = "library"
)

// Entry is one cataloged software title instance.
type Entry struct {
	ID            string      `json:"id"`
	Filename      string      `json:"filename"`
	OriginalPath  string      `json:"originalPath"`
	Kind          naming.Kind `json:"kind"`
	Ext           string      `json:"ext"`
	SizeBytes     int64       `json:"sizeBytes"`
	DisplayName   string      `json:"displayName"`
	Year          string      `json:"year,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	BoxArtURL     string      `json:"boxArtUrl,omitempty"`
	BoxArtCached  bool        `json:"boxArtCached,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Origin        Origin      `json:"origin"`
	ContainerPath string      `json:"containerPath,omitempty"`
	MemberPath    string      `json:"memberPath,omitempty"`
	LibraryPath   string      `json:"libraryPath,omitempty"`
	SHA256        string      `json:"sha256,omitempty"`
	AddedAt       time.Time   `json:"addedAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// HasTag reports whether the entry carries the given tag (tags are stored
// lowercase and trimmed).
func (e *Entry) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Settings is the user-preferences sub-record persisted with the catalog.
type Settings struct {
	LibraryDir         string `json:"libraryDir,omitempty"`
	OrganizeOnAdd      bool   `json:"organizeOnAdd"`
	AutoExpandArchives bool   `json:"autoExpandArchives"`
	EmulatorCommand    string `json:"emulatorCommand,omitempty"`
}

// Document is the whole persisted unit: schema version, settings, and the
// entry list in insertion order.
type Document struct {
	Version     int       `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
	Settings    Settings  `json:"settings"`
	Entries     []Entry   `json:"entries"`
}

func defaultSettings() Settings {
	return Settings{
		EmulatorCommand: "x64 {path}",
	}
}

// reconcileSettings fills defaults for keys a loaded or imported document
// left empty. This is the single forward-compatibility step: new settings
// keys get their default here instead of scattering zero-value checks.
func reconcileSettings(s Settings) Settings {
	def := defaultSettings()
	if s.EmulatorCommand == "" {
		s.EmulatorCommand = def.EmulatorCommand
	}
	return s
}

func defaultDocument() Document {
	return Document{
		Version:  SchemaVersion,
		Settings: defaultSettings(),
		Entries:  []Entry{},
	}
}
