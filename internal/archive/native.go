package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/xz"
)

// Native extracts zip, tar, gzip, bzip2, and xz archives without
// external tools. Compressed tarballs (.tar.gz, .tbz2, .txz and
// friends) are unpacked in one pass.
type Native struct{}

var _ Extractor = (*Native)(nil)

func (n *Native) Extract(ctx context.Context, archivePath, destDir string) error {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return err
	}

	switch format {
	case "zip":
		return extractZip(archivePath, destDir)
	case "tar":
		file, err := os.Open(archivePath)
		if err != nil {
			return err
		}
		defer file.Close()
		return extractTar(ctx, file, destDir)
	case "gzip", "bzip2", "xz":
		return n.extractCompressed(ctx, archivePath, destDir, format)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (n *Native) extractCompressed(ctx context.Context, archivePath, destDir, format string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var decompressed io.Reader
	switch format {
	case "gzip":
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		defer gz.Close()
		decompressed = gz
	case "bzip2":
		bz, err := bzip2.NewReader(file, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		defer bz.Close()
		decompressed = bz
	case "xz":
		xr, err := xz.NewReader(file)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		decompressed = xr
	}

	buffered := bufio.NewReader(decompressed)
	if isTarStream(buffered) {
		return extractTar(ctx, buffered, destDir)
	}

	// A bare compressed file; drop the compression extension
	name := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	if name == "" {
		name = "extracted"
	}
	return writeEntry(filepath.Join(destDir, name), buffered)
}

// isTarStream peeks at the ustar magic 257 bytes into the stream.
func isTarStream(r *bufio.Reader) bool {
	header, err := r.Peek(262)
	if err != nil {
		return false
	}
	return bytes.Equal(header[257:262], []byte("ustar"))
}

func extractTar(ctx context.Context, r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}

		fpath, err := securePath(destDir, hdr.Name)
		if err != nil {
			return err
		}
		if hdr.Typeflag == tar.TypeDir {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}
		if err := writeEntry(fpath, tr); err != nil {
			return err
		}
	}
	return nil
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer r.Close()

	for _, f := range r.File {
		fpath, err := securePath(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}

		zipped, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		writeErr := writeEntry(fpath, zipped)
		zipped.Close()
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}

// securePath joins an archive entry name onto the destination,
// rejecting names that would escape it.
func securePath(destDir, name string) (string, error) {
	fpath := filepath.Join(destDir, name)
	if !strings.HasPrefix(fpath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes destination", ErrExtraction, name)
	}
	return fpath, nil
}

func writeEntry(fpath string, r io.Reader) error {
	out, err := os.Create(fpath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return out.Close()
}
