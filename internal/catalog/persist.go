package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// Persister is the persistence collaborator: it stores and retrieves the
// single serialized catalog document.
type Persister interface {
	// Load returns the stored document bytes, or ok=false if nothing has
	// been stored yet.
	Load() (data []byte, ok bool, err error)
	// Save replaces the stored document.
	Save(data []byte) error
}

// FilePersister keeps the document as a JSON file on disk.
type FilePersister struct {
	path string
}

// NewFilePersister creates a FilePersister writing to path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the backing file path.
func (p *FilePersister) Path() string { return p.path }

func (p *FilePersister) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading catalog file: %w", err)
	}
	return data, true, nil
}

// Save writes via a temp file and rename so a crash mid-write never leaves
// a truncated catalog behind.
func (p *FilePersister) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0750); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing catalog temp file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing catalog file: %w", err)
	}
	return nil
}
