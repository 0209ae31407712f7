package alias

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

func sampleRecord() *Record {
	return &Record{
		Version:           2,
		Kind:              KindFile,
		VolumeName:        "Boot",
		VolumeCreated:     3431272487,
		VolumeSignature:   VolumeSignatureHFS,
		ParentDirectoryID: 542,
		FileName:          "app",
		FileNumber:        543,
		FileCreated:       3265652246,
		FileType:          "APPL",
		FileCreator:       "AQt7",
		NlvlFrom:          1,
		NlvlTo:            1,
		Extras: []Extra{
			StringExtra(TagParentDirectoryName, "B"),
			DirectoryIDsExtra([]uint32{542, 541, 484}),
			StringExtra(TagAbsolutePath, "Boot:AutQuit7:A:B:app"),
		},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	src := sampleRecord()
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// Record size field must match the emitted length
	if got := uint16(encoded[4])<<8 | uint16(encoded[5]); int(got) != len(encoded) {
		t.Errorf("record_size = %d, emitted %d bytes", got, len(encoded))
	}

	decoded, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(src, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, src)
	}
}

func TestRecordFields(t *testing.T) {
	src := &Record{
		VolumeName:        "MacHD",
		ParentDirectoryID: 2,
		FileName:          "Game",
		FileNumber:        45,
		NlvlFrom:          1,
		NlvlTo:            1,
	}
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.VolumeName != "MacHD" || decoded.ParentDirectoryID != 2 ||
		decoded.FileName != "Game" || decoded.FileNumber != 45 || decoded.Kind != KindFile {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRecordNoExtras(t *testing.T) {
	src := &Record{VolumeName: "Boot", FileName: "app", NlvlFrom: 1, NlvlTo: 1}
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Fixed header plus just the 4-byte end marker
	if len(encoded) != 154 {
		t.Errorf("no-extras record is %d bytes, want 154", len(encoded))
	}
	decoded, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Extras) != 0 {
		t.Errorf("expected no extras, got %+v", decoded.Extras)
	}
}

func TestUnknownExtraPreserved(t *testing.T) {
	src := sampleRecord()
	// AppleShare zone name, a tag this package does not interpret,
	// with an odd-length payload to exercise the padding byte
	src.Extras = append(src.Extras, Extra{Tag: 3, Data: []byte("Zone1")})

	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatal(err)
	}
	unknown, ok := decoded.Extra(3)
	if !ok || !bytes.Equal(unknown.Data, []byte("Zone1")) {
		t.Errorf("unknown extra not preserved: %+v", decoded.Extras)
	}

	reencoded, err := decoded.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Error("re-encode with unknown extra is not byte-stable")
	}
}

func TestTruncatedRecord(t *testing.T) {
	src := sampleRecord()
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeRecord(encoded[:100]); !errors.Is(err, ErrTruncatedRecord) {
		t.Errorf("truncated fixed header: got %v, want ErrTruncatedRecord", err)
	}
}

func TestExtraPastRecordSize(t *testing.T) {
	src := sampleRecord()
	encoded, err := src.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Inflate the first extra's declared length so it reads past the
	// record size
	encoded[152], encoded[153] = 0xFF, 0xFF
	if _, err := DecodeRecord(encoded); !errors.Is(err, ErrInvalidExtraTag) {
		t.Errorf("oversized extra: got %v, want ErrInvalidExtraTag", err)
	}
}

func TestEndTagRejectedInExtras(t *testing.T) {
	src := sampleRecord()
	src.Extras = append(src.Extras, Extra{Tag: TagEnd})
	if _, err := src.Encode(); !errors.Is(err, ErrInvalidExtraTag) {
		t.Errorf("explicit end marker: got %v", err)
	}
}

func TestNameValidation(t *testing.T) {
	src := sampleRecord()
	src.VolumeName = "a volume name that is much too long"
	if _, err := src.Encode(); !errors.Is(err, binio.ErrValueOutOfRange) {
		t.Errorf("oversized volume name: got %v", err)
	}
}
