package binio

// Writer appends big-endian fields to a growable buffer. Encode-time
// validation is eager: a field that cannot hold the given value fails
// before any bytes are emitted for it.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written buffer. The slice aliases the writer's
// internal storage; callers must not write through it while continuing to
// use the writer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteUint8 appends an unsigned byte
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends a big-endian uint16
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// WriteInt16 appends a big-endian signed 16-bit value
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteUint24 appends a big-endian 24-bit value
func (w *Writer) WriteUint24(v uint32) error {
	if v > 0xFFFFFF {
		return ErrValueOutOfRange
	}
	w.buf = append(w.buf, byte(v>>16), byte(v>>8), byte(v))
	return nil
}

// WriteUint32 appends a big-endian uint32
func (w *Writer) WriteUint32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteBytes appends raw bytes
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteFixedString appends s as an n-byte fixed-width field, zero filled.
// An empty string writes n zero bytes, matching how the original formats
// encode "no value" for type and creator codes.
func (w *Writer) WriteFixedString(s string, n int) error {
	if s == "" {
		w.WriteZeros(n)
		return nil
	}
	if len(s) != n {
		return ErrValueOutOfRange
	}
	w.buf = append(w.buf, s...)
	return nil
}

// WritePascalString appends s as a length-prefixed string in a fixed field
// of maxLen+1 bytes, zero filled past the string. Pass maxLen < 0 for an
// unpadded Pascal string.
func (w *Writer) WritePascalString(s string, maxLen int) error {
	if len(s) > 255 || (maxLen >= 0 && len(s) > maxLen) {
		return ErrValueOutOfRange
	}
	w.WriteUint8(uint8(len(s)))
	w.buf = append(w.buf, s...)
	if maxLen >= 0 {
		w.WriteZeros(maxLen - len(s))
	}
	return nil
}

// WriteZeros appends n zero bytes
func (w *Writer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// PadToEven appends one zero byte if the buffer length is odd. Resource
// data entries and alias extra-info payloads are word aligned this way.
func (w *Writer) PadToEven() {
	if len(w.buf)&1 == 1 {
		w.buf = append(w.buf, 0)
	}
}

// PadTo pads with zeros up to the next multiple of boundary
func (w *Writer) PadTo(boundary int) {
	rem := len(w.buf) % boundary
	if rem != 0 {
		w.WriteZeros(boundary - rem)
	}
}

// SetUint16At overwrites the big-endian uint16 at the given offset.
// Used to backpatch sizes and checksums computed after their fields.
func (w *Writer) SetUint16At(offset int, v uint16) error {
	if offset < 0 || offset+2 > len(w.buf) {
		return ErrValueOutOfRange
	}
	w.buf[offset] = byte(v >> 8)
	w.buf[offset+1] = byte(v)
	return nil
}
