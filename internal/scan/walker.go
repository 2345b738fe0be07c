package scan

import (
	"io/fs"
	"path"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/naming"
	"go.uber.org/zap"
)

// Walker enumerates a hierarchical file store depth-first, classifying each
// file as recognized payload, container, or ignored. Traversal is best
// effort: an unreadable directory is logged and abandoned while its
// siblings' results are kept.
type Walker struct {
	log *zap.Logger
}

// NewWalker creates a Walker.
func NewWalker(log *zap.Logger) *Walker {
	return &Walker{log: log}
}

// Walk scans the tree under root. Recognized payload files come back
// deduplicated; containers are collected for the caller to decide on and
// are never expanded here — that separation lets the caller prompt once per
// container and throttle expansion to bound peak memory.
func (w *Walker) Walk(fsys fs.FS, root string) ([]FileRecord, []ContainerRecord) {
	var files []FileRecord
	var containers []ContainerRecord
	w.walkDir(fsys, root, &files, &containers)
	return Resolve(files), containers
}

// WalkFiles is the recognized-files-only mode used by re-scans without
// container support.
func (w *Walker) WalkFiles(fsys fs.FS, root string) []FileRecord {
	var files []FileRecord
	w.walkDir(fsys, root, &files, nil)
	return Resolve(files)
}

func (w *Walker) walkDir(fsys fs.FS, dir string, files *[]FileRecord, containers *[]ContainerRecord) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		w.log.Warn("directory unreadable, skipping subtree",
			zap.String("dir", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := path.Join(dir, name)

		if entry.IsDir() {
			w.walkDir(fsys, full, files, containers)
			continue
		}

		if IsContainer(name) {
			if containers != nil {
				*containers = append(*containers, ContainerRecord{
					Name: name,
					Path: full,
					Open: func() (Container, error) {
						data, err := fs.ReadFile(fsys, full)
						if err != nil {
							return nil, err
						}
						return Open(name, data)
					},
				})
			}
			continue
		}

		ext, ok := naming.Recognized(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			w.log.Warn("file metadata unreadable, skipping",
				zap.String("path", full), zap.Error(err))
			continue
		}
		*files = append(*files, FileRecord{
			Name:    name,
			Path:    full,
			Ext:     ext,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Origin:  catalog.OriginDirect,
		})
	}
}
