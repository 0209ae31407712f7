package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.sit")
	if FileExists(path) {
		t.Error("reported missing file as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("reported existing file as missing")
	}
	if FileExists(dir) {
		t.Error("reported directory as a file")
	}
}

func TestCreateDirIfNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	if err := CreateDirIfNotExists(path); err != nil {
		t.Fatal(err)
	}
	if !DirExists(path) {
		t.Error("directory not created")
	}
	// Second call on an existing directory is a no-op.
	if err := CreateDirIfNotExists(path); err != nil {
		t.Fatal(err)
	}
}
