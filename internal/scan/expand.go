package scan

import (
	"time"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/naming"
	"go.uber.org/zap"
)

// maxNesting bounds recursive archive expansion. A container at this depth
// is not opened — the expander fails closed against adversarial nesting.
const maxNesting = 3

// Expander recursively collects metadata-only records from a container.
type Expander struct {
	log *zap.Logger
}

// NewExpander creates an Expander.
func NewExpander(log *zap.Logger) *Expander {
	return &Expander{log: log}
}

// Expand lists a container's recognized payload members as metadata-only
// records, then descends into nested containers one at a time. Raw member
// bytes are materialized only for nested containers, and only one at a
// time, which bounds peak memory to a single container's decompressed size.
// A failure inside one nested container is logged and does not abort its
// siblings.
func (e *Expander) Expand(c Container, containerPath string, depth int) []FileRecord {
	if depth >= maxNesting {
		e.log.Warn("archive nesting limit reached, not expanding",
			zap.String("container", containerPath),
			zap.Int("depth", depth))
		return nil
	}

	var records []FileRecord
	var nested []Member

	// Pass 1: metadata only. Nested containers are queued, not expanded.
	for _, m := range c.Members() {
		if m.IsDir {
			continue
		}
		name := baseName(m.Path)
		if IsContainer(name) {
			nested = append(nested, m)
			continue
		}
		ext, ok := naming.Recognized(name)
		if !ok {
			continue
		}
		mod := m.ModTime
		if mod.IsZero() {
			mod = time.Now()
		}
		records = append(records, FileRecord{
			Name:          name,
			Path:          containerPath + "/" + m.Path,
			Ext:           ext,
			Size:          m.Size,
			ModTime:       mod,
			Origin:        catalog.OriginArchive,
			ContainerPath: containerPath,
			MemberPath:    m.Path,
		})
	}

	// Pass 2: expand queued nested containers sequentially.
	for _, m := range nested {
		data, err := c.Extract(m.Path)
		if err != nil {
			e.log.Warn("nested container extraction failed",
				zap.String("container", containerPath),
				zap.String("member", m.Path),
				zap.Error(err))
			continue
		}
		inner, err := Open(baseName(m.Path), data)
		if err != nil {
			e.log.Warn("nested container unreadable",
				zap.String("container", containerPath),
				zap.String("member", m.Path),
				zap.Error(err))
			continue
		}
		records = append(records, e.Expand(inner, containerPath+"/"+m.Path, depth+1)...)
	}

	return records
}

// baseName returns the final element of a slash-separated archive path.
func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
