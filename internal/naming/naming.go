package naming

import (
	"path/filepath"
	"strings"
)

// Kind classifies a recognized media image by its physical medium.
type Kind string

const (
	KindDisk    Kind = "disk"
	KindTape    Kind = "tape"
	KindCart    Kind = "cart"
	KindUnknown Kind = "unknown"
)

// kindByExt is the fixed set of recognized payload extensions (lowercase,
// with leading dot) and the medium each one maps to.
var kindByExt = map[string]Kind{
	".d64": KindDisk,
	".d71": KindDisk,
	".d81": KindDisk,
	".g64": KindDisk,
	".t64": KindTape,
	".tap": KindTape,
	".crt": KindCart,
	".prg": KindUnknown,
}

// Extensions returns the recognized payload extensions.
func Extensions() []string {
	out := make([]string, 0, len(kindByExt))
	for ext := range kindByExt {
		out = append(out, ext)
	}
	return out
}

// Recognized reports whether the filename carries a recognized payload
// extension, returning the lowercase extension when it does.
func Recognized(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := kindByExt[ext]
	return ext, ok
}

// KindForExt maps a recognized extension to its medium. Unrecognized
// extensions map to KindUnknown.
func KindForExt(ext string) Kind {
	if k, ok := kindByExt[strings.ToLower(ext)]; ok {
		return k
	}
	return KindUnknown
}

// splitExt separates a filename into base name and recognized extension.
// ok is false (and base is the whole filename) when the extension is not
// one of the recognized payload types.
func splitExt(filename string) (base, ext string, ok bool) {
	ext, ok = Recognized(filename)
	if !ok {
		return filename, "", false
	}
	return filename[:len(filename)-len(ext)], ext, true
}
