package scan_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/blackwell-systems/retroshelf/internal/scan"
	"go.uber.org/zap"
)

// makeZip builds an in-memory zip from member path → content.
func makeZip(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for path, data := range members {
		w, err := zw.Create(path)
		if err != nil {
			t.Fatalf("zip create %s: %v", path, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip write %s: %v", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func openZip(t *testing.T, data []byte) scan.Container {
	t.Helper()
	c, err := scan.Open("test.zip", data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return c
}

func TestExpand_MetadataOnly(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 512)
	data := makeZip(t, map[string][]byte{
		"disks/Katakis.d64":  payload,
		"tapes/Commando.tap": payload,
		"manual.pdf":         []byte("skip"),
	})

	e := scan.NewExpander(zap.NewNop())
	got := e.Expand(openZip(t, data), "roms/bundle.zip", 0)

	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	byName := map[string]scan.FileRecord{}
	for _, r := range got {
		byName[r.Name] = r
	}
	k, ok := byName["Katakis.d64"]
	if !ok {
		t.Fatal("Katakis.d64 missing")
	}
	if k.Path != "roms/bundle.zip/disks/Katakis.d64" {
		t.Errorf("Path = %q", k.Path)
	}
	if k.ContainerPath != "roms/bundle.zip" {
		t.Errorf("ContainerPath = %q", k.ContainerPath)
	}
	if k.MemberPath != "disks/Katakis.d64" {
		t.Errorf("MemberPath = %q", k.MemberPath)
	}
	if k.Origin != "archive-member" {
		t.Errorf("Origin = %q", k.Origin)
	}
	if k.Size != 512 {
		t.Errorf("Size = %d, want uncompressed 512", k.Size)
	}
	if k.ModTime.IsZero() {
		t.Error("ModTime should be filled")
	}
}

func TestExpand_NestedDepthBound(t *testing.T) {
	payload := []byte("image")
	level4 := makeZip(t, map[string][]byte{"D.d64": payload})
	level3 := makeZip(t, map[string][]byte{"C.d64": payload, "level4.zip": level4})
	level2 := makeZip(t, map[string][]byte{"B.d64": payload, "level3.zip": level3})
	level1 := makeZip(t, map[string][]byte{"A.d64": payload, "level2.zip": level2})

	e := scan.NewExpander(zap.NewNop())
	got := e.Expand(openZip(t, level1), "deep.zip", 0)

	names := map[string]bool{}
	for _, r := range got {
		names[r.Name] = true
	}
	for _, want := range []string{"A.d64", "B.d64", "C.d64"} {
		if !names[want] {
			t.Errorf("missing %s from levels 1-3", want)
		}
	}
	if names["D.d64"] {
		t.Error("level 4 should be beyond the nesting bound")
	}
	if len(got) != 3 {
		t.Errorf("records = %d, want 3", len(got))
	}
}

func TestExpand_CorruptNestedContainerIsIsolated(t *testing.T) {
	data := makeZip(t, map[string][]byte{
		"good.d64":   []byte("fine"),
		"broken.zip": []byte("this is not a zip"),
		"also.d64":   []byte("fine"),
	})

	e := scan.NewExpander(zap.NewNop())
	got := e.Expand(openZip(t, data), "mixed.zip", 0)
	if len(got) != 2 {
		t.Errorf("records = %d, want 2 (corrupt sibling isolated)", len(got))
	}
}

func TestExtract_SingleMemberOnDemand(t *testing.T) {
	want := []byte("the actual disk image bytes")
	data := makeZip(t, map[string][]byte{"games/IK+.d64": want})

	c := openZip(t, data)
	got, err := c.Extract("games/IK+.d64")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("extracted bytes mismatch")
	}
	if _, err := c.Extract("missing.d64"); err == nil {
		t.Error("Extract of missing member should fail")
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	_, err := scan.Open("file.rar", []byte{0x52})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestIsContainer(t *testing.T) {
	if !scan.IsContainer("bundle.ZIP") || !scan.IsContainer("pack.7z") {
		t.Error("zip/7z should be containers")
	}
	if scan.IsContainer("game.d64") {
		t.Error("payload types are not containers")
	}
}
