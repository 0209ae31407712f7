// Package alias decodes and encodes classic Mac OS alias records and the
// alias files that carry them.
//
// An alias record is the contents of an 'alis' resource: a fixed header
// describing the target volume and item, followed by a variable list of
// typed extra-info fields terminated by an end marker. An alias file is a
// resource fork holding a single 'alis' resource plus Finder metadata.
//
// Format reference: "Alias Manager" in Inside Macintosh: Files, and the
// alias-layout notes the original tooling was written against.
package alias

import "errors"

var (
	// ErrTruncatedRecord indicates the fixed alias header could not be
	// fully read.
	ErrTruncatedRecord = errors.New("truncated alias record")

	// ErrInvalidExtraTag indicates an extra-info tag/length pair that
	// would read past the stated record size.
	ErrInvalidExtraTag = errors.New("extra info extends past record size")

	// ErrMissingAliasResource indicates a resource fork without an
	// 'alis' resource.
	ErrMissingAliasResource = errors.New("no alias resource in fork")
)

// Alias kinds
const (
	KindFile   = 0
	KindFolder = 1
)

// Extra-info tags. Unknown tags round-trip with their payload untouched.
const (
	TagParentDirectoryName = 0
	TagDirectoryIDs        = 1
	TagAbsolutePath        = 2
	// 3-6 and 9-10 carry AppleShare and dialup info; they are preserved
	// as opaque payloads
	TagEnd = 0xFFFF
)

// Drive types for the DriveType field
const (
	DriveFixedHD    = 0
	DriveNetwork    = 1
	DriveFloppy400K = 2
	DriveFloppy800K = 3
	DriveFloppy14M  = 4
	DriveEjectable  = 5
)

// Volume signatures
const (
	VolumeSignatureMFS     = "RW"
	VolumeSignatureHFS     = "BD"
	VolumeSignatureHFSPlus = "H+"
)

// Field widths and the total fixed header size
const (
	maxVolumeNameLen = 27
	maxFileNameLen   = 63
	fixedHeaderSize  = 150
	recordSizeOffset = 4
)

// nlvl value for "alias and target on different volumes"
const NlvlDifferentVolume = 0xFFFF

// Extra is one extra-info field. Data holds the payload verbatim, without
// the on-wire padding byte, so unknown tags survive a decode/encode cycle
// unmodified.
type Extra struct {
	Tag  uint16
	Data []byte
}

// StringExtra builds a text-payload extra (parent directory name,
// absolute path)
func StringExtra(tag uint16, value string) Extra {
	return Extra{Tag: tag, Data: []byte(value)}
}

// DirectoryIDsExtra builds a TagDirectoryIDs extra from a list of
// directory ids, ordered innermost first
func DirectoryIDsExtra(ids []uint32) Extra {
	data := make([]byte, 0, 4*len(ids))
	for _, id := range ids {
		data = append(data, byte(id>>24), byte(id>>16), byte(id>>8), byte(id))
	}
	return Extra{Tag: TagDirectoryIDs, Data: data}
}

// String interprets the payload as text
func (e Extra) String() string {
	return string(e.Data)
}

// DirectoryIDs interprets the payload as a list of 32-bit directory ids
func (e Extra) DirectoryIDs() []uint32 {
	ids := make([]uint32, 0, len(e.Data)/4)
	for i := 0; i+4 <= len(e.Data); i += 4 {
		ids = append(ids, uint32(e.Data[i])<<24|uint32(e.Data[i+1])<<16|uint32(e.Data[i+2])<<8|uint32(e.Data[i+3]))
	}
	return ids
}

// Record is a decoded alias record. The record-size field is recomputed
// on encode from the emitted bytes, so it is not stored here.
type Record struct {
	UserType           string // 4-byte application-defined tag, usually empty
	Version            uint16 // 2 for every record in scope
	Kind               uint16 // KindFile or KindFolder
	VolumeName         string // at most 27 bytes
	VolumeCreated      uint32 // Mac timestamp, may be 0
	VolumeSignature    string // "BD" for HFS
	DriveType          uint16
	ParentDirectoryID  uint32
	FileName           string // at most 63 bytes
	FileNumber         uint32
	FileCreated        uint32 // Mac timestamp, may be 0
	FileType           string
	FileCreator        string
	NlvlFrom           uint16
	NlvlTo             uint16
	VolumeAttributes   uint32
	VolumeFilesystemID string // 2 bytes, zero for MFS and HFS
	Extras             []Extra
}

// Extra finds the first extra with the given tag
func (rec *Record) Extra(tag uint16) (Extra, bool) {
	for _, e := range rec.Extras {
		if e.Tag == tag {
			return e, true
		}
	}
	return Extra{}, false
}
