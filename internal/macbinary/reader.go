package macbinary

import (
	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

// Decode parses a MacBinary container from buf. The header checksum
// classifies the file: a valid CRC means MacBinary II, a valid CRC plus
// the 'mBIN' signature means MacBinary III. A zero or invalid CRC over an
// otherwise well-formed header is accepted as MacBinary I, which never
// carried a checksum; real MacBinary I uploads are common enough that
// strictness here would reject working files.
func Decode(buf []byte) (*File, error) {
	r := binio.NewReader(buf)

	hdr, version, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	file := &File{Header: *hdr, Version: version}

	// Sections follow the header, each starting on a 128-byte boundary
	file.DataFork, err = readSection(r, "data fork", hdr.DataForkLength)
	if err != nil {
		return nil, err
	}
	file.ResourceFork, err = readSection(r, "resource fork", hdr.ResourceForkLength)
	if err != nil {
		return nil, err
	}
	file.Comment, err = readSection(r, "comment", uint32(hdr.CommentLength))
	if err != nil {
		return nil, err
	}

	return file, nil
}

func decodeHeader(r *binio.Reader) (*Header, int, error) {
	if r.Remaining() < HeaderSize {
		return nil, 0, binio.NewDecodeError(binio.ErrUnexpectedEndOfData, "MacBinary header", "", r.Offset())
	}

	oldVersion, _ := r.ReadUint8()
	nameLen, _ := r.ReadUint8()
	if nameLen < 1 || nameLen > MaxFilenameLen {
		return nil, 0, binio.NewDecodeError(ErrInvalidHeader, "MacBinary header", "filename", 1)
	}
	nameBytes, _ := r.ReadBytes(MaxFilenameLen)
	filename := string(nameBytes[:nameLen])

	hdr := &Header{Filename: filename}
	hdr.FileType, _ = r.ReadFixedString(4)
	hdr.FileCreator, _ = r.ReadFixedString(4)
	hdr.FinderFlags, _ = r.ReadUint8()
	zero1, _ := r.ReadUint8()
	hdr.YPosition, _ = r.ReadUint16()
	hdr.XPosition, _ = r.ReadUint16()
	hdr.ParentDirectoryID, _ = r.ReadUint16()
	protected, _ := r.ReadUint8()
	hdr.Protected = protected != 0
	zero2, _ := r.ReadUint8()
	hdr.DataForkLength, _ = r.ReadUint32()
	hdr.ResourceForkLength, _ = r.ReadUint32()
	hdr.Created, _ = r.ReadUint32()
	hdr.Modified, _ = r.ReadUint32()
	hdr.CommentLength, _ = r.ReadUint16()
	hdr.ExtraFinderFlags, _ = r.ReadUint8()
	sig, _ := r.ReadFixedString(4)
	hdr.FilenameScript, _ = r.ReadUint8()
	hdr.ExtendedFinderFlags, _ = r.ReadUint8()
	_ = r.Skip(8) // reserved
	_ = r.Skip(4) // reserved for unpacked size
	_ = r.Skip(2) // reserved for second header length
	_, _ = r.ReadUint8()
	_, _ = r.ReadUint8()
	hdr.HeaderCRC, _ = r.ReadUint16()
	_ = r.Skip(2) // reserved for computer type and OS id

	// Classify the format version
	crc := binio.CRC16(r.Buffer()[:crcOffset])
	switch {
	case hdr.HeaderCRC != 0 && crc == hdr.HeaderCRC:
		if sig == signature {
			return hdr, VersionIII, nil
		}
		return hdr, VersionII, nil
	case hdr.HeaderCRC != 0:
		return nil, 0, binio.NewDecodeError(ErrInvalidHeader, "MacBinary header", "header_crc", crcOffset)
	default:
		// No CRC. MacBinary I is recognized by its mandatory zero bytes.
		if oldVersion != 0 || zero1 != 0 || zero2 != 0 {
			return nil, 0, binio.NewDecodeError(ErrInvalidHeader, "MacBinary header", "zero_fill", 0)
		}
		return hdr, VersionI, nil
	}
}

// readSection reads a declared number of bytes after aligning to the next
// 128-byte boundary. A declared length longer than the remaining buffer
// is a fork/comment length mismatch, not plain truncation: the header and
// payload disagree.
func readSection(r *binio.Reader, name string, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if err := r.AlignTo(SectionAlign); err != nil {
		return nil, err
	}
	if uint32(r.Remaining()) < length {
		return nil, binio.NewDecodeError(ErrForkLengthMismatch, name, "length", r.Offset())
	}
	return r.ReadBytes(int(length))
}
