// Package library manages the organized on-disk library tree. Files are
// laid out as <baseDir>/<kind>/<shelf letter>/<display name><ext>, so a
// collection stays browsable without the catalog.
package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/blackwell-systems/retroshelf/internal/naming"
	"github.com/blackwell-systems/retroshelf/internal/util"
)

// Manager handles the organized library tree.
type Manager struct {
	baseDir string
}

// New creates a library Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// BaseDir returns the library root.
func (m *Manager) BaseDir() string { return m.baseDir }

// Path returns the library path a file would be organized to.
func (m *Manager) Path(kind naming.Kind, displayName, ext string) string {
	name := sanitize(displayName)
	return filepath.Join(m.baseDir, string(kind), shelfLetter(name), name+strings.ToLower(ext))
}

// Exists reports whether the organized file is already in place.
func (m *Manager) Exists(kind naming.Kind, displayName, ext string) bool {
	_, err := os.Stat(m.Path(kind, displayName, ext))
	return err == nil
}

// Store writes r to its library location via a temp file and rename.
// Returns the final path and the sha256 of the stored content.
func (m *Manager) Store(kind naming.Kind, displayName, ext string, r io.Reader) (string, string, error) {
	destPath := m.Path(kind, displayName, ext)
	if err := util.EnsureDir(filepath.Dir(destPath)); err != nil {
		return "", "", fmt.Errorf("create library dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", "", fmt.Errorf("writing to library: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", "", fmt.Errorf("closing temp file: %w", err)
	}

	sum, err := util.SHA256File(tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", "", fmt.Errorf("computing checksum: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", "", err
	}
	return destPath, sum, nil
}

// StoreFile copies an existing file into the library. The source is left
// in place.
func (m *Manager) StoreFile(src string, kind naming.Kind, displayName, ext string) (string, string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	return m.Store(kind, displayName, ext, f)
}

// Remove deletes the organized file if it exists.
func (m *Manager) Remove(kind naming.Kind, displayName, ext string) error {
	err := os.Remove(m.Path(kind, displayName, ext))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// shelfLetter picks the alphabetical shelf for a name. Titles that don't
// start with a letter share the "0-9" shelf.
func shelfLetter(name string) string {
	for _, r := range name {
		if unicode.IsLetter(r) {
			return strings.ToLower(string(r))
		}
		break
	}
	return "0-9"
}

// sanitize strips characters that don't belong in a file name.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}
