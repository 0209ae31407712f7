// Package hfs manipulates HFS Standard disk images through the hfsutils
// command line tools (hmount, hdir, hcopy, hdel, hformat, hmkdir).
//
// HFS Extended (HFS+) images are not supported.
package hfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrItemNotFound is returned when a path does not exist on the
	// mounted volume.
	ErrItemNotFound = errors.New("no such file or directory on volume")

	// ErrUnparsableListing is returned when a directory listing line
	// does not match the known hdir output formats.
	ErrUnparsableListing = errors.New("unable to parse directory listing")
)

// ToolError reports a failed invocation of an hfsutils tool.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed (exit %d)", e.Tool, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Item is a single file or directory from an HFS directory listing.
//
// Modified holds the human-readable modification date exactly as hdir
// prints it; hfsutils offers no machine-readable form.
type Item struct {
	ID       uint32
	Name     string
	IsFile   bool
	Type     string // 4-char type code, blank for directories
	Creator  string // 4-char creator code, blank for directories
	DataSize int64
	RsrcSize int64
	Modified string
}

// VolumeInfo describes a mounted HFS volume.
type VolumeInfo struct {
	Name      string
	Created   uint32 // Mac timestamp
	Modified  uint32 // Mac timestamp
	BytesFree int64
}

// Volume is the set of operations performed against a mounted HFS
// volume. Paths are absolute MacOS paths, colon separated, for example
// "Boot:" or "Boot:System Folder".
type Volume interface {
	// Mount opens the disk image at the given local path. All later
	// operations address this image.
	Mount(ctx context.Context, imagePath string) (*VolumeInfo, error)

	// List returns the items of the given directory.
	List(ctx context.Context, dirPath string) ([]Item, error)

	// Stat returns information about a single item.
	Stat(ctx context.Context, itemPath string) (*Item, error)

	// Exists reports whether an item is present at the given path.
	Exists(ctx context.Context, itemPath string) (bool, error)

	// CopyIn copies a MacBinary-encoded local file onto the volume,
	// replacing any item already at the target path.
	CopyIn(ctx context.Context, localPath, targetPath string) error

	// CopyInStream writes the MacBinary-encoded stream onto the volume.
	CopyInStream(ctx context.Context, src io.Reader, targetPath string) error

	// CopyOut copies an item off the volume into a MacBinary-encoded
	// local file.
	CopyOut(ctx context.Context, sourcePath, localPath string) error

	// Delete removes the item at the given path.
	Delete(ctx context.Context, itemPath string) error

	// Mkdir creates a directory at the given path.
	Mkdir(ctx context.Context, dirPath string) error

	// Format formats an existing image file as an empty volume with the
	// given name and mounts it.
	Format(ctx context.Context, imagePath, name string) error

	// FormatNew creates a zero-filled image file of the given size,
	// formats it, and mounts it.
	FormatNew(ctx context.Context, imagePath, name string, size int64) error
}
