// Package macbinary decodes and encodes MacBinary I, II and III files,
// the flat transport container that carries a classic Mac file's data
// fork, resource fork and Finder metadata through fork-unaware channels.
//
// Format reference: the MacBinary II/III specifications; the layout here
// also includes the computer-type field that the II/III documents dropped
// from the MacBinary I description.
package macbinary

import "errors"

var (
	// ErrInvalidHeader indicates a header that fails checksum validation
	// or carries out-of-range fields (e.g. a filename outside 1-63 bytes).
	ErrInvalidHeader = errors.New("invalid MacBinary header")

	// ErrForkLengthMismatch indicates the byte counts following the
	// header do not match the header-declared fork lengths.
	ErrForkLengthMismatch = errors.New("fork length does not match header")
)

// Format versions, as classified during decode
const (
	VersionI   = 1 // no checksum; identified by its zero fill bytes
	VersionII  = 2 // CRC-checked header
	VersionIII = 3 // CRC-checked header with 'mBIN' signature
)

// Header field constants
const (
	HeaderSize     = 128
	SectionAlign   = 128 // forks and comment are padded to this boundary
	MaxFilenameLen = 63

	signature        = "mBIN"
	versionByte      = 130 // MacBinary III
	minVersionToRead = 129 // readable by MacBinary II decoders
	crcOffset        = 124 // CRC covers bytes 0..123
)

// Finder flags (the finder_flags header byte)
const (
	FlagIsAlias       = 1 << 7 // files only
	FlagIsInvisible   = 1 << 6
	FlagHasBundle     = 1 << 5
	FlagNameLocked    = 1 << 4
	FlagIsStationery  = 1 << 3
	FlagHasCustomIcon = 1 << 2
	FlagHasBeenInited = 1 << 0 // set by the Finder once desktop resources are registered
)

// Extra Finder flags (the extra_finder_flags header byte)
const (
	ExtraFlagHasNoInits           = 1 << 7 // extensions/control panels only
	ExtraFlagIsShared             = 1 << 6 // applications only
	ExtraFlagRequiresSwitchLaunch = 1 << 5
	ExtraFlagColorReserved        = 1 << 4
	ExtraFlagColorMask            = 0x0E
	ExtraFlagIsOnDesk             = 1 << 0 // System 6
)

// Script codes for the filename_script field, from the Script Manager
const (
	ScriptRoman       = 0
	ScriptJapanese    = 1
	ScriptTradChinese = 2
	ScriptKorean      = 3
	ScriptArabic      = 4
	ScriptHebrew      = 5
	ScriptGreek       = 6
	ScriptCyrillic    = 7
	ScriptSimpChinese = 25
	ScriptUnicode     = 0x7E
)

// Header is the decoded 128-byte MacBinary header. Reserved and zero-fill
// fields are regenerated on encode rather than stored.
type Header struct {
	Filename            string // 1-63 bytes
	FileType            string // 4-byte type code
	FileCreator         string // 4-byte creator code
	FinderFlags         uint8
	YPosition           uint16
	XPosition           uint16
	ParentDirectoryID   uint16
	Protected           bool
	DataForkLength      uint32
	ResourceForkLength  uint32
	Created             uint32 // Mac timestamp
	Modified            uint32 // Mac timestamp
	CommentLength       uint16
	ExtraFinderFlags    uint8
	FilenameScript      uint8
	ExtendedFinderFlags uint8
	HeaderCRC           uint16 // as stored; zero for MacBinary I
}

// File is a complete MacBinary container
type File struct {
	Header       Header
	Version      int // VersionI, VersionII or VersionIII
	DataFork     []byte
	ResourceFork []byte
	Comment      []byte
}
