package macbinary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

func sampleFile() *File {
	return &File{
		Header: Header{
			Filename:    "Game",
			FileType:    "APPL",
			FileCreator: "AQt7",
			FinderFlags: FlagHasBundle,
			Created:     3265652246,
			Modified:    3265652246,
		},
		DataFork:     []byte("data fork bytes"),
		ResourceFork: bytes.Repeat([]byte{0x5A}, 300),
		Comment:      []byte("uploaded from MacHD"),
	}
}

func TestRoundTrip(t *testing.T) {
	src := sampleFile()
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded)%SectionAlign != 0 {
		t.Errorf("encoded length %d is not 128-byte aligned", len(encoded))
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Version != VersionIII {
		t.Errorf("version = %d, want MacBinary III", decoded.Version)
	}
	h := decoded.Header
	if h.Filename != "Game" || h.FileType != "APPL" || h.FileCreator != "AQt7" {
		t.Errorf("header = %+v", h)
	}
	if h.Created != 3265652246 || h.Modified != 3265652246 {
		t.Errorf("timestamps = %d/%d", h.Created, h.Modified)
	}
	if !bytes.Equal(decoded.DataFork, src.DataFork) {
		t.Error("data fork mismatch")
	}
	if !bytes.Equal(decoded.ResourceFork, src.ResourceFork) {
		t.Error("resource fork mismatch")
	}
	if !bytes.Equal(decoded.Comment, src.Comment) {
		t.Error("comment mismatch")
	}
}

func TestStoredCRCAlwaysValidates(t *testing.T) {
	encoded, err := sampleFile().Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Header.HeaderCRC != binio.CRC16(encoded[:crcOffset]) {
		t.Error("stored CRC does not match recomputed CRC")
	}
}

func TestTruncatedHeader(t *testing.T) {
	encoded, err := sampleFile().Encode()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decode(encoded[:127])
	if !binio.IsEndOfData(err) {
		t.Errorf("127-byte buffer: got %v, want end of data", err)
	}
}

func TestCorruptCRCRejected(t *testing.T) {
	encoded, err := sampleFile().Encode()
	if err != nil {
		t.Fatal(err)
	}
	encoded[65] ^= 0xFF // flip a bit in the file type
	if _, err := Decode(encoded); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("corrupted header: got %v, want ErrInvalidHeader", err)
	}
}

func TestMacBinaryIAccepted(t *testing.T) {
	encoded, err := sampleFile().Encode()
	if err != nil {
		t.Fatal(err)
	}
	// MacBinary I carries no CRC and no signature. Zero them out to
	// simulate an old-style file.
	for i := 102; i < 106; i++ {
		encoded[i] = 0
	}
	encoded[124], encoded[125] = 0, 0

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unchecksummed header rejected: %v", err)
	}
	if decoded.Version != VersionI {
		t.Errorf("version = %d, want MacBinary I", decoded.Version)
	}
}

func TestForkLengthMismatch(t *testing.T) {
	encoded, err := sampleFile().Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Chop off the resource fork and comment, leaving the header's
	// declared lengths intact
	_, err = Decode(encoded[:HeaderSize+SectionAlign])
	if !errors.Is(err, ErrForkLengthMismatch) {
		t.Errorf("short payload: got %v, want ErrForkLengthMismatch", err)
	}
}

func TestFilenameValidation(t *testing.T) {
	f := sampleFile()
	f.Header.Filename = ""
	if _, err := f.Encode(); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("empty filename: got %v", err)
	}

	f.Header.Filename = string(bytes.Repeat([]byte{'x'}, 64))
	if _, err := f.Encode(); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("64-byte filename: got %v", err)
	}
}

func TestForkOnlyFile(t *testing.T) {
	f := &File{
		Header:       Header{Filename: "ReadMe", FileType: "TEXT", FileCreator: "ttxt", Created: 1, Modified: 1},
		ResourceFork: []byte{0x01, 0x02},
	}
	encoded, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Header.DataForkLength != 0 || len(decoded.DataFork) != 0 {
		t.Errorf("empty data fork decoded as %d bytes", len(decoded.DataFork))
	}
	if !bytes.Equal(decoded.ResourceFork, f.ResourceFork) {
		t.Error("resource fork mismatch")
	}
}
