package binio

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderIntegers(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})

	if v, err := r.ReadUint8(); err != nil || v != 0x12 {
		t.Errorf("ReadUint8 = %#x, %v", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x3456 {
		t.Errorf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := r.ReadUint24(); err != nil || v != 0x789ABC {
		t.Errorf("ReadUint24 = %#x, %v", v, err)
	}
	if r.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", r.Remaining())
	}
}

func TestReaderSignedInt16(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF})
	v, err := r.ReadInt16()
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Errorf("ReadInt16 = %d, want -1", v)
	}
}

func TestReaderOverrun(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.ReadUint32(); !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Errorf("ReadUint32 on short buffer: got %v, want ErrUnexpectedEndOfData", err)
	}
	// Failed read must not move the cursor
	if r.Offset() != 0 {
		t.Errorf("cursor moved after failed read: offset %d", r.Offset())
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0102 {
		t.Errorf("ReadUint16 after failed read = %#x, %v", v, err)
	}
}

func TestPascalStringRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WritePascalString("MacHD", 27); err != nil {
		t.Fatal(err)
	}
	if w.Len() != 28 {
		t.Fatalf("padded pascal string length = %d, want 28", w.Len())
	}

	r := NewReader(w.Bytes())
	s, err := r.ReadPascalString(27)
	if err != nil {
		t.Fatal(err)
	}
	if s != "MacHD" {
		t.Errorf("round trip = %q, want %q", s, "MacHD")
	}
	if r.Remaining() != 0 {
		t.Errorf("padding not consumed, %d bytes left", r.Remaining())
	}
}

func TestPascalStringUnpadded(t *testing.T) {
	w := NewWriter()
	if err := w.WritePascalString("Notes", -1); err != nil {
		t.Fatal(err)
	}
	if w.Len() != 6 {
		t.Fatalf("unpadded pascal string length = %d, want 6", w.Len())
	}

	r := NewReader(w.Bytes())
	s, err := r.ReadPascalString(-1)
	if err != nil || s != "Notes" {
		t.Errorf("round trip = %q, %v", s, err)
	}
}

func TestPascalStringTooLong(t *testing.T) {
	w := NewWriter()
	if err := w.WritePascalString("this name is too long for the field", 27); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("got %v, want ErrValueOutOfRange", err)
	}
	if w.Len() != 0 {
		t.Errorf("writer emitted %d bytes for rejected value", w.Len())
	}
}

func TestFixedString(t *testing.T) {
	w := NewWriter()
	if err := w.WriteFixedString("TEXT", 4); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFixedString("", 4); err != nil {
		t.Fatal(err)
	}
	want := []byte{'T', 'E', 'X', 'T', 0, 0, 0, 0}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("WriteFixedString produced % x, want % x", w.Bytes(), want)
	}
}

func TestPadding(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0xAA)
	w.PadToEven()
	if w.Len() != 2 {
		t.Errorf("PadToEven length = %d, want 2", w.Len())
	}
	w.PadToEven()
	if w.Len() != 2 {
		t.Errorf("PadToEven on even buffer grew it to %d", w.Len())
	}
	w.PadTo(128)
	if w.Len() != 128 {
		t.Errorf("PadTo(128) length = %d, want 128", w.Len())
	}
}

func TestSetUint16At(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0)
	if err := w.SetUint16At(1, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0xBE, 0xEF, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("buffer = % x, want % x", w.Bytes(), want)
	}
	if err := w.SetUint16At(3, 0); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("out of bounds backpatch: got %v", err)
	}
}

func TestCRC16(t *testing.T) {
	// CRC-16/XMODEM check value for "123456789"
	if crc := CRC16([]byte("123456789")); crc != 0x31C3 {
		t.Errorf("CRC16 = %#04x, want 0x31c3", crc)
	}
	if crc := CRC16(nil); crc != 0 {
		t.Errorf("CRC16 of empty input = %#04x, want 0", crc)
	}
}

func TestDecodeErrorContext(t *testing.T) {
	err := NewDecodeError(ErrUnexpectedEndOfData, "resource map header", "offset_to_resource_type_list", 24)
	if !IsEndOfData(err) {
		t.Error("DecodeError does not unwrap to ErrUnexpectedEndOfData")
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Offset != 24 {
		t.Errorf("decode error context lost: %v", err)
	}
}
