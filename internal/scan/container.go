package scan

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/sevenzip"
)

// ErrUnsupported reports that the environment cannot handle the requested
// container format.
var ErrUnsupported = errors.New("unsupported container format")

// Member describes one file inside a container: internal path, uncompressed
// size if the format records it (0 otherwise), and modified time if known.
type Member struct {
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Container is the archive codec collaborator. The scanner treats it as
// opaque: list members, extract one member's bytes on demand.
type Container interface {
	Members() []Member
	Extract(path string) ([]byte, error)
}

var containerExts = map[string]bool{
	".zip": true,
	".7z":  true,
}

// IsContainer reports whether the filename is a recognized archive type.
func IsContainer(name string) bool {
	return containerExts[strings.ToLower(filepath.Ext(name))]
}

// Open wraps raw archive bytes in a codec chosen by file extension.
func Open(name string, data []byte) (Container, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening zip %s: %w", name, err)
		}
		return &zipContainer{r: zr}, nil
	case ".7z":
		sr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening 7z %s: %w", name, err)
		}
		return &sevenZipContainer{r: sr}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

type zipContainer struct {
	r *zip.Reader
}

func (c *zipContainer) Members() []Member {
	out := make([]Member, 0, len(c.r.File))
	for _, f := range c.r.File {
		out = append(out, Member{
			Path:    f.Name,
			IsDir:   f.FileInfo().IsDir(),
			Size:    int64(f.UncompressedSize64),
			ModTime: f.Modified,
		})
	}
	return out
}

func (c *zipContainer) Extract(path string) ([]byte, error) {
	for _, f := range c.r.File {
		if f.Name != path {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", path, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("member %s not found", path)
}

type sevenZipContainer struct {
	r *sevenzip.Reader
}

func (c *sevenZipContainer) Members() []Member {
	out := make([]Member, 0, len(c.r.File))
	for _, f := range c.r.File {
		out = append(out, Member{
			Path:    f.Name,
			IsDir:   f.FileInfo().IsDir(),
			Size:    int64(f.UncompressedSize),
			ModTime: f.Modified,
		})
	}
	return out
}

func (c *sevenZipContainer) Extract(path string) ([]byte, error) {
	for _, f := range c.r.File {
		if f.Name != path {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", path, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("member %s not found", path)
}
