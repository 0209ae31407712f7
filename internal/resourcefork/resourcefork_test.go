package resourcefork

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

func TestRoundTripSingleResource(t *testing.T) {
	fork := &Fork{
		Types: []Type{
			{
				Code: "TEXT",
				Resources: []Resource{
					{ID: 128, Name: "Notes", Data: []byte("hello")},
				},
			},
		},
	}

	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fork, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, fork)
	}

	res, err := decoded.Resource("TEXT", 128)
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "Notes" || !bytes.Equal(res.Data, []byte("hello")) {
		t.Errorf("resource = %+v", res)
	}
}

func TestRoundTripStability(t *testing.T) {
	fork := &Fork{
		Types: []Type{
			{
				Code: "alis",
				Resources: []Resource{
					{ID: 0, Name: "app alias", Data: bytes.Repeat([]byte{0xAB}, 151)},
				},
			},
			{
				Code: "STR ",
				Resources: []Resource{
					{ID: -1, Data: []byte("odd")},
					{ID: 200, Name: "second", Attributes: AttrLocked | AttrPreload, Data: nil},
				},
			},
		},
	}

	first, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := decoded.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("decode/encode cycle is not byte-stable")
	}
}

func TestEmptyFork(t *testing.T) {
	fork := &Fork{}
	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// 256-byte header, empty data area, 28-byte map header plus the
	// 2-byte type count
	if len(encoded) != 286 {
		t.Errorf("empty fork encodes to %d bytes, want 286", len(encoded))
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Types) != 0 {
		t.Errorf("empty fork decoded with %d types", len(decoded.Types))
	}
}

func TestDataPaddedToEven(t *testing.T) {
	fork := &Fork{}
	if err := fork.Add("TEXT", Resource{ID: 1, Data: []byte("odd")}); err != nil {
		t.Fatal(err)
	}
	if err := fork.Add("TEXT", Resource{ID: 2, Data: []byte("even")}); err != nil {
		t.Fatal(err)
	}
	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	res, err := decoded.Resource("TEXT", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Data, []byte("even")) {
		t.Errorf("second resource read through padding incorrectly: %q", res.Data)
	}
}

func TestDuplicateResourceRejected(t *testing.T) {
	fork := &Fork{
		Types: []Type{
			{Code: "TEXT", Resources: []Resource{{ID: 1}, {ID: 1}}},
		},
	}
	if _, err := fork.Encode(); !errors.Is(err, ErrDuplicateResource) {
		t.Errorf("Encode with duplicate ids: got %v", err)
	}

	fork2 := &Fork{}
	if err := fork2.Add("TEXT", Resource{ID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := fork2.Add("TEXT", Resource{ID: 1}); !errors.Is(err, ErrDuplicateResource) {
		t.Errorf("Add with duplicate id: got %v", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x00, 0x01})
	if !binio.IsEndOfData(err) {
		t.Errorf("truncated header: got %v, want end of data", err)
	}
}

func TestDecodeInconsistentHeader(t *testing.T) {
	fork := &Fork{}
	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Point the map past the end of the buffer
	encoded[4], encoded[5], encoded[6], encoded[7] = 0xFF, 0xFF, 0xFF, 0xFF
	if _, err := Decode(encoded); !errors.Is(err, ErrMalformedFork) {
		t.Errorf("bad map offset: got %v, want ErrMalformedFork", err)
	}
}

func TestDecodeDataOffsetOutsideArea(t *testing.T) {
	fork := &Fork{}
	if err := fork.Add("TEXT", Resource{ID: 1, Data: []byte("hi")}); err != nil {
		t.Fatal(err)
	}
	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt the reference's 24-bit data offset (bytes 5..7 of the
	// 12-byte reference entry). The reference list starts after the
	// 256-byte header, the 6-byte data area, the 28-byte map header,
	// the 2-byte type count and one 8-byte type entry.
	refListStart := 256 + 6 + 28 + 2 + 8
	for i := 0; i < 3; i++ {
		encoded[refListStart+5+i] = 0xFF
	}
	if _, err := Decode(encoded); !errors.Is(err, ErrMalformedFork) {
		t.Errorf("out-of-area data offset: got %v, want ErrMalformedFork", err)
	}
}
