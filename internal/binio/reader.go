package binio

// Reader is a cursor over an in-memory byte buffer. All reads are
// bounds-checked and advance the cursor; a read past the end of the buffer
// fails with ErrUnexpectedEndOfData and leaves the cursor untouched.
//
// The buffer is treated as immutable input; Reader never copies or
// modifies it except where ReadBytes documents a copy.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of buf
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the current cursor position
func (r *Reader) Offset() int {
	return r.pos
}

// Buffer returns the underlying buffer, independent of the cursor.
// Checksum validation needs the raw header bytes alongside the decoded
// fields.
func (r *Reader) Buffer() []byte {
	return r.buf
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Seek moves the cursor to an absolute offset
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.buf) {
		return ErrUnexpectedEndOfData
	}
	r.pos = offset
	return nil
}

// Skip advances the cursor by n bytes
func (r *Reader) Skip(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return ErrUnexpectedEndOfData
	}
	r.pos += n
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrUnexpectedEndOfData
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads an unsigned byte
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian uint16
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadInt16 reads a big-endian signed 16-bit value
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint24 reads a big-endian 24-bit value, as used by resource fork
// data-area offsets
func (r *Reader) ReadUint24() (uint32, error) {
	b, err := r.take(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// ReadUint32 reads a big-endian uint32
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadBytes reads n bytes and returns a copy, so the result stays valid
// independently of the input buffer
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadFixedString reads an n-byte fixed-width field as a string. Classic
// Mac type and creator codes are stored this way.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadPascalString reads a length-prefixed string occupying a fixed field
// of maxLen+1 bytes: one length byte, the string bytes, then zero fill up
// to the field width. Pass maxLen < 0 for an unpadded Pascal string whose
// field width is determined by the length byte alone.
func (r *Reader) ReadPascalString(maxLen int) (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	if maxLen >= 0 && int(n) > maxLen {
		return "", ErrValueOutOfRange
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	s := string(b)
	if maxLen >= 0 {
		if err := r.Skip(maxLen - int(n)); err != nil {
			return "", err
		}
	}
	return s, nil
}

// AlignTo skips forward to the next multiple of boundary, if the cursor is
// not already on one. MacBinary sections are aligned to 128 bytes.
func (r *Reader) AlignTo(boundary int) error {
	rem := r.pos % boundary
	if rem == 0 {
		return nil
	}
	pad := boundary - rem
	if r.pos+pad > len(r.buf) {
		// Trailing padding may legitimately be absent at end of buffer
		r.pos = len(r.buf)
		return nil
	}
	r.pos += pad
	return nil
}
