package alias

import (
	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

// DecodeRecord parses an alias record from buf, the contents of an 'alis'
// resource. Extra-info fields with unknown tags are preserved verbatim.
func DecodeRecord(buf []byte) (*Record, error) {
	r := binio.NewReader(buf)
	if r.Remaining() < fixedHeaderSize {
		return nil, binio.NewDecodeError(ErrTruncatedRecord, "alias record", "", 0)
	}

	rec := &Record{}
	var recordSize uint16

	rec.UserType = trimZeros(mustFixed(r, 4))
	recordSize, _ = r.ReadUint16()
	rec.Version, _ = r.ReadUint16()
	rec.Kind, _ = r.ReadUint16()

	var err error
	rec.VolumeName, err = r.ReadPascalString(maxVolumeNameLen)
	if err != nil {
		return nil, binio.NewDecodeError(err, "alias record", "volume_name", r.Offset())
	}
	rec.VolumeCreated, _ = r.ReadUint32()
	rec.VolumeSignature = trimZeros(mustFixed(r, 2))
	rec.DriveType, _ = r.ReadUint16()
	rec.ParentDirectoryID, _ = r.ReadUint32()
	rec.FileName, err = r.ReadPascalString(maxFileNameLen)
	if err != nil {
		return nil, binio.NewDecodeError(err, "alias record", "file_name", r.Offset())
	}
	rec.FileNumber, _ = r.ReadUint32()
	rec.FileCreated, _ = r.ReadUint32()
	rec.FileType = trimZeros(mustFixed(r, 4))
	rec.FileCreator = trimZeros(mustFixed(r, 4))
	rec.NlvlFrom, _ = r.ReadUint16()
	rec.NlvlTo, _ = r.ReadUint16()
	rec.VolumeAttributes, _ = r.ReadUint32()
	rec.VolumeFilesystemID = trimZeros(mustFixed(r, 2))
	_ = r.Skip(10) // reserved

	// The stated record size bounds the extra-info section. A size that
	// disagrees with the buffer falls back to the buffer end, matching
	// how the original reader trusted stream EOF.
	end := int(recordSize)
	if end < fixedHeaderSize || end > len(buf) {
		end = len(buf)
	}

	for r.Offset() < end {
		if end-r.Offset() < 4 {
			return nil, binio.NewDecodeError(ErrInvalidExtraTag, "alias extra info", "tag", r.Offset())
		}
		tag, _ := r.ReadUint16()
		length, _ := r.ReadUint16()
		if tag == TagEnd {
			break
		}
		if r.Offset()+int(length) > end {
			return nil, binio.NewDecodeError(ErrInvalidExtraTag, "alias extra info", "length", r.Offset())
		}
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, binio.NewDecodeError(err, "alias extra info", "payload", r.Offset())
		}
		if length&1 == 1 && r.Offset() < end {
			_ = r.Skip(1) // padding byte
		}
		rec.Extras = append(rec.Extras, Extra{Tag: tag, Data: data})
	}

	return rec, nil
}

// mustFixed reads a fixed-width field whose presence was established by
// the up-front length check
func mustFixed(r *binio.Reader, n int) string {
	s, _ := r.ReadFixedString(n)
	return s
}

// trimZeros maps an all-zero fixed field to the empty string, the "no
// value" convention for type and creator codes
func trimZeros(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != 0 {
			return s
		}
	}
	return ""
}
