// Package archive examines and extracts compressed archives holding
// classic Mac OS software, typically disk images inside zip, tar, gzip,
// bzip2, or xz containers.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrExtraction is returned when an archive cannot be extracted.
	ErrExtraction = errors.New("archive extraction failed")

	// ErrUnsupportedFormat is returned when the archive format cannot
	// be determined or is not handled.
	ErrUnsupportedFormat = errors.New("unsupported archive format")
)

// Extractor unpacks an archive file into a destination directory.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) error
}

// Extracted is an archive unpacked to a temporary directory. Close
// removes the directory; use with defer.
type Extracted struct {
	ArchivePath string
	Dir         string
}

func (e *Extracted) Close() error {
	return os.RemoveAll(e.Dir)
}

// ExtractToTemp unpacks the archive into a fresh temporary directory.
func ExtractToTemp(ctx context.Context, x Extractor, archivePath string) (*Extracted, error) {
	dir, err := os.MkdirTemp("", "classicbox-archive-")
	if err != nil {
		return nil, fmt.Errorf("creating extraction directory: %w", err)
	}
	if err := x.Extract(ctx, archivePath, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return &Extracted{ArchivePath: archivePath, Dir: dir}, nil
}

var magicNumbers = map[string][]byte{
	"zip":   {0x50, 0x4B, 0x03, 0x04},
	"gzip":  {0x1F, 0x8B},
	"bzip2": {0x42, 0x5A, 0x68},
	"xz":    {0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
}

// DetectFormat determines the archive format from magic numbers,
// falling back to the file extension. Plain tar has its magic 257
// bytes in, so it is detected by extension only.
func DetectFormat(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	header := make([]byte, 6)
	if _, err := io.ReadFull(file, header); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	for format, magic := range magicNumbers {
		if bytes.HasPrefix(header, magic) {
			return format, nil
		}
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".zip":
		return "zip", nil
	case ".tar":
		return "tar", nil
	case ".gz", ".tgz":
		return "gzip", nil
	case ".bz2", ".tbz2":
		return "bzip2", nil
	case ".xz", ".txz":
		return "xz", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}
