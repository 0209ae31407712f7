package hfs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, name string, size int, stamps map[int]string) string {
	t.Helper()
	buf := make([]byte, size)
	for off, sig := range stamps {
		copy(buf[off:], sig)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSniffHFSImage(t *testing.T) {
	path := writeImage(t, "boot.img", 4096, map[int]string{1024: "BD"})
	kind, err := SniffImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if kind != ImageHFS {
		t.Errorf("kind = %v, want hfs", kind)
	}
}

func TestSniffHFSPlusImage(t *testing.T) {
	plain := writeImage(t, "plus.img", 4096, map[int]string{1024: "H+"})
	kind, err := SniffImage(plain)
	if err != nil {
		t.Fatal(err)
	}
	if kind != ImageHFSPlus {
		t.Errorf("kind = %v, want hfs+", kind)
	}

	// HFS wrapper embedding an HFS+ volume
	wrapped := writeImage(t, "wrapped.img", 4096, map[int]string{1024: "BD", 1148: "H+"})
	kind, err = SniffImage(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if kind != ImageHFSPlus {
		t.Errorf("wrapped kind = %v, want hfs+", kind)
	}
}

func TestSniffDMG(t *testing.T) {
	buf := make([]byte, 2048)
	copy(buf[len(buf)-512:], "koly")
	path := filepath.Join(t.TempDir(), "image.dmg")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	kind, err := SniffImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if kind != ImageDMG {
		t.Errorf("kind = %v, want dmg", kind)
	}
}

func TestSniffUnknown(t *testing.T) {
	path := writeImage(t, "random.bin", 4096, nil)
	kind, err := SniffImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if kind != ImageUnknown {
		t.Errorf("kind = %v, want unknown", kind)
	}
}
