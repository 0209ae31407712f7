package hfs

import (
	"fmt"
	"os"
)

// ImageKind classifies a disk image file by its filesystem signature.
type ImageKind int

const (
	ImageUnknown ImageKind = iota
	ImageHFS               // HFS Standard, mountable with hfsutils
	ImageHFSPlus           // HFS Extended, not supported by hfsutils
	ImageDMG               // UDIF disk image with a koly trailer
)

func (k ImageKind) String() string {
	switch k {
	case ImageHFS:
		return "hfs"
	case ImageHFSPlus:
		return "hfs+"
	case ImageDMG:
		return "dmg"
	default:
		return "unknown"
	}
}

// Volume signatures at offset 1024, and the UDIF trailer magic in the
// last 512 bytes of a DMG.
const (
	mdbSignatureHFS     = "BD"
	mdbSignatureHFSPlus = "H+"
	mdbSignatureHFSX    = "HX"
	kolyMagic           = "koly"

	mdbOffset        = 1024
	kolyTrailerSize  = 512
	minSniffableSize = mdbOffset + 2
)

// SniffImage classifies a disk image file without mounting it. Useful
// for telling raw HFS Standard images apart from HFS+ or compressed
// DMG images, which hfsutils cannot mount.
func SniffImage(path string) (ImageKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageUnknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ImageUnknown, err
	}

	if info.Size() >= kolyTrailerSize {
		trailer := make([]byte, 4)
		if _, err := f.ReadAt(trailer, info.Size()-kolyTrailerSize); err == nil && string(trailer) == kolyMagic {
			return ImageDMG, nil
		}
	}

	if info.Size() < minSniffableSize {
		return ImageUnknown, fmt.Errorf("%s: too small to hold a volume header", path)
	}

	sig := make([]byte, 2)
	if _, err := f.ReadAt(sig, mdbOffset); err != nil {
		return ImageUnknown, err
	}
	switch string(sig) {
	case mdbSignatureHFS:
		// An HFS wrapper volume can embed HFS+; the embedded signature
		// sits in the MDB's drEmbedSigWord field at offset 1148
		embed := make([]byte, 2)
		if _, err := f.ReadAt(embed, 1148); err == nil && string(embed) == mdbSignatureHFSPlus {
			return ImageHFSPlus, nil
		}
		return ImageHFS, nil
	case mdbSignatureHFSPlus, mdbSignatureHFSX:
		return ImageHFSPlus, nil
	default:
		return ImageUnknown, nil
	}
}
