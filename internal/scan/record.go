package scan

import (
	"time"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

// FileRecord is a metadata-only descriptor of a discovered payload file.
// It never carries file bytes — archive members stay compressed until a
// caller explicitly extracts one.
type FileRecord struct {
	Name    string
	Path    string
	Ext     string
	Size    int64
	ModTime time.Time
	Origin  catalog.Origin

	// ContainerPath and MemberPath are set for archive members: the path of
	// the enclosing container and the member's internal path, kept for
	// later on-demand extraction.
	ContainerPath string
	MemberPath    string
}

// ContainerRecord is a discovered nested-container file, queued for a
// caller decision instead of being expanded inline. Open materializes a
// codec handle when (and only if) the caller commits to expansion.
type ContainerRecord struct {
	Name string
	Path string
	Open func() (Container, error)
}
