package macbinary

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
	"github.com/deploymenttheory/go-classicbox/internal/mactime"
)

// Encode serializes a MacBinary III container: header with computed CRC,
// then data fork, resource fork and comment, each padded to a 128-byte
// boundary. Field ranges are validated before any bytes are emitted.
// Fork lengths and the comment length in the header are derived from the
// actual section contents, never trusted from the caller.
func (f *File) Encode() ([]byte, error) {
	hdr := f.Header

	if len(hdr.Filename) < 1 || len(hdr.Filename) > MaxFilenameLen {
		return nil, fmt.Errorf("filename %q must be 1-%d bytes: %w", hdr.Filename, MaxFilenameLen, ErrInvalidHeader)
	}
	if len(hdr.FileType) != 4 && hdr.FileType != "" {
		return nil, fmt.Errorf("file type %q: %w", hdr.FileType, ErrInvalidHeader)
	}
	if len(hdr.FileCreator) != 4 && hdr.FileCreator != "" {
		return nil, fmt.Errorf("file creator %q: %w", hdr.FileCreator, ErrInvalidHeader)
	}
	if len(f.Comment) > 0xFFFF {
		return nil, fmt.Errorf("comment of %d bytes exceeds the 16-bit length field: %w", len(f.Comment), ErrInvalidHeader)
	}

	// Timestamps default to now, matching what a fresh encode on a real
	// Mac would stamp
	created, modified := hdr.Created, hdr.Modified
	if created == 0 {
		created = mactime.Now()
	}
	if modified == 0 {
		modified = created
	}

	w := binio.NewWriter()

	w.WriteUint8(0) // old version
	if err := w.WritePascalString(hdr.Filename, MaxFilenameLen); err != nil {
		return nil, fmt.Errorf("filename: %w", err)
	}
	if err := w.WriteFixedString(hdr.FileType, 4); err != nil {
		return nil, fmt.Errorf("file type: %w", err)
	}
	if err := w.WriteFixedString(hdr.FileCreator, 4); err != nil {
		return nil, fmt.Errorf("file creator: %w", err)
	}
	w.WriteUint8(hdr.FinderFlags)
	w.WriteUint8(0) // zero fill
	w.WriteUint16(hdr.YPosition)
	w.WriteUint16(hdr.XPosition)
	w.WriteUint16(hdr.ParentDirectoryID)
	if hdr.Protected {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	w.WriteUint8(0) // zero fill
	w.WriteUint32(uint32(len(f.DataFork)))
	w.WriteUint32(uint32(len(f.ResourceFork)))
	w.WriteUint32(created)
	w.WriteUint32(modified)
	w.WriteUint16(uint16(len(f.Comment)))
	w.WriteUint8(hdr.ExtraFinderFlags)
	if err := w.WriteFixedString(signature, 4); err != nil {
		return nil, err
	}
	w.WriteUint8(hdr.FilenameScript)
	w.WriteUint8(hdr.ExtendedFinderFlags)
	w.WriteZeros(8) // reserved
	w.WriteUint32(0) // reserved for unpacked size
	w.WriteUint16(0) // reserved for second header length
	w.WriteUint8(versionByte)
	w.WriteUint8(minVersionToRead)

	crc := binio.CRC16(w.Bytes()[:crcOffset])
	w.WriteUint16(crc)
	w.WriteUint16(0) // reserved for computer type and OS id

	writeSection(w, f.DataFork)
	writeSection(w, f.ResourceFork)
	writeSection(w, f.Comment)

	return w.Bytes(), nil
}

func writeSection(w *binio.Writer, section []byte) {
	if len(section) == 0 {
		return
	}
	w.WriteBytes(section)
	w.PadTo(SectionAlign)
}
