package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func buildTar(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, data := range entries {
		if err := tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(data)),
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		data   []byte
		format string
	}{
		{"image.zip", []byte{0x50, 0x4B, 0x03, 0x04, 0, 0}, "zip"},
		{"image.gz", []byte{0x1F, 0x8B, 8, 0, 0, 0}, "gzip"},
		{"image.bz2", []byte{0x42, 0x5A, 0x68, '9', 0, 0}, "bzip2"},
		{"image.xz", []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, "xz"},
		// No leading magic; detected by extension
		{"image.tar", []byte("plain"), "tar"},
	}
	for _, c := range cases {
		path := filepath.Join(dir, c.name)
		writeFile(t, path, c.data)
		format, err := DetectFormat(path)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if format != c.format {
			t.Errorf("%s: format = %q, want %q", c.name, format, c.format)
		}
	}

	unknown := filepath.Join(dir, "image.sit")
	writeFile(t, unknown, []byte("StuffIt!"))
	if _, err := DetectFormat(unknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown format: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestNativeExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "sw.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("disk/Boot.img")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("image bytes")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	writeFile(t, archive, buf.Bytes())

	dest := t.TempDir()
	if err := (&Native{}).Extract(context.Background(), archive, dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "disk", "Boot.img"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image bytes" {
		t.Errorf("extracted content = %q", data)
	}
}

func TestNativeExtractCompressedTarball(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "sw.tar.gz")

	tarData := buildTar(t, map[string][]byte{"System.img": []byte("system")})
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(tarData); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	writeFile(t, archive, buf.Bytes())

	dest := t.TempDir()
	if err := (&Native{}).Extract(context.Background(), archive, dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "System.img"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "system" {
		t.Errorf("extracted content = %q", data)
	}
}

func TestNativeExtractBareGzip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "Boot.img.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte("not a tarball")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	writeFile(t, archive, buf.Bytes())

	dest := t.TempDir()
	if err := (&Native{}).Extract(context.Background(), archive, dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "Boot.img"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "not a tarball" {
		t.Errorf("extracted content = %q", data)
	}
}

func TestNativeRejectsEscapingEntry(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar")
	writeFile(t, archive, buildTar(t, map[string][]byte{"../evil": []byte("x")}))

	dest := t.TempDir()
	err := (&Native{}).Extract(context.Background(), archive, dest)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("escaping entry: got %v, want ErrExtraction", err)
	}
}

func TestExtractToTempCleansUp(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "sw.tar")
	writeFile(t, archive, buildTar(t, map[string][]byte{"readme": []byte("hi")}))

	extracted, err := ExtractToTemp(context.Background(), &Native{}, archive)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(extracted.Dir, "readme")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
	if err := extracted.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(extracted.Dir); !os.IsNotExist(err) {
		t.Error("extraction directory not removed")
	}
}
