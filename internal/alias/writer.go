package alias

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

// Encode serializes the record. The record-size field is backpatched from
// the actual emitted length, and the end marker is always appended;
// callers list only real extras in rec.Extras.
func (rec *Record) Encode() ([]byte, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}

	version := rec.Version
	if version == 0 {
		version = 2
	}
	volumeSignature := rec.VolumeSignature
	if volumeSignature == "" {
		volumeSignature = VolumeSignatureHFS
	}

	w := binio.NewWriter()

	if err := w.WriteFixedString(rec.UserType, 4); err != nil {
		return nil, fmt.Errorf("user type: %w", err)
	}
	w.WriteUint16(0) // record size, backpatched below
	w.WriteUint16(version)
	w.WriteUint16(rec.Kind)
	if err := w.WritePascalString(rec.VolumeName, maxVolumeNameLen); err != nil {
		return nil, fmt.Errorf("volume name: %w", err)
	}
	w.WriteUint32(rec.VolumeCreated)
	if err := w.WriteFixedString(volumeSignature, 2); err != nil {
		return nil, fmt.Errorf("volume signature: %w", err)
	}
	w.WriteUint16(rec.DriveType)
	w.WriteUint32(rec.ParentDirectoryID)
	if err := w.WritePascalString(rec.FileName, maxFileNameLen); err != nil {
		return nil, fmt.Errorf("file name: %w", err)
	}
	w.WriteUint32(rec.FileNumber)
	w.WriteUint32(rec.FileCreated)
	if err := w.WriteFixedString(rec.FileType, 4); err != nil {
		return nil, fmt.Errorf("file type: %w", err)
	}
	if err := w.WriteFixedString(rec.FileCreator, 4); err != nil {
		return nil, fmt.Errorf("file creator: %w", err)
	}
	w.WriteUint16(rec.NlvlFrom)
	w.WriteUint16(rec.NlvlTo)
	w.WriteUint32(rec.VolumeAttributes)
	if err := w.WriteFixedString(rec.VolumeFilesystemID, 2); err != nil {
		return nil, fmt.Errorf("volume filesystem id: %w", err)
	}
	w.WriteZeros(10) // reserved

	for _, e := range rec.Extras {
		w.WriteUint16(e.Tag)
		w.WriteUint16(uint16(len(e.Data)))
		w.WriteBytes(e.Data)
		w.PadToEven()
	}

	// End marker
	w.WriteUint16(TagEnd)
	w.WriteUint16(0)

	if w.Len() > 0xFFFF {
		return nil, fmt.Errorf("record of %d bytes exceeds the 16-bit size field: %w", w.Len(), binio.ErrValueOutOfRange)
	}
	if err := w.SetUint16At(recordSizeOffset, uint16(w.Len())); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// validate checks field ranges eagerly, before any bytes are emitted
func (rec *Record) validate() error {
	if len(rec.VolumeName) > maxVolumeNameLen {
		return fmt.Errorf("volume name %q longer than %d bytes: %w", rec.VolumeName, maxVolumeNameLen, binio.ErrValueOutOfRange)
	}
	if len(rec.FileName) > maxFileNameLen {
		return fmt.Errorf("file name %q longer than %d bytes: %w", rec.FileName, maxFileNameLen, binio.ErrValueOutOfRange)
	}
	for _, e := range rec.Extras {
		if e.Tag == TagEnd {
			return fmt.Errorf("extras must not include the end marker: %w", ErrInvalidExtraTag)
		}
		if len(e.Data) > 0xFFFF {
			return fmt.Errorf("extra %#04x payload of %d bytes exceeds the 16-bit length field: %w", e.Tag, len(e.Data), binio.ErrValueOutOfRange)
		}
	}
	return nil
}
