package resourcefork

import (
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

// Encode serializes the fork. The data area is laid out first, each
// resource behind a 32-bit length prefix and padded to even length, then
// the map with all offsets computed from the enumeration order of
// f.Types. Validation happens before any bytes are emitted.
func (f *Fork) Encode() ([]byte, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	// Offsets each resource's data and name will land at, keyed by
	// enumeration order
	type layout struct {
		dataOff uint32
		nameOff uint16
	}
	layouts := make([]layout, 0, f.resourceCount())

	var nextDataOff uint32
	var nextNameOff uint16
	for _, typ := range f.Types {
		for _, res := range typ.Resources {
			l := layout{dataOff: nextDataOff, nameOff: noNameSentinel}
			if res.Name != "" {
				l.nameOff = nextNameOff
				nextNameOff += uint16(1 + len(res.Name))
			}
			dataSize := uint32(4 + len(res.Data))
			if dataSize&1 == 1 {
				dataSize++
			}
			nextDataOff += dataSize
			layouts = append(layouts, l)
		}
	}
	dataAreaLen := nextDataOff
	nameListLen := uint16(nextNameOff)

	// The type count field counts toward the type list, not the map header
	typeListLen := 2 + len(f.Types)*typeEntrySize
	refListLen := f.resourceCount() * refEntrySize
	mapLen := mapHeaderSize + typeListLen + refListLen + int(nameListLen)

	w := binio.NewWriter()

	// Fork header
	w.WriteUint32(forkHeaderSize)
	w.WriteUint32(forkHeaderSize + dataAreaLen)
	w.WriteUint32(dataAreaLen)
	w.WriteUint32(uint32(mapLen))
	w.WriteZeros(forkHeaderSize - 16) // reserved for system use

	// Data area
	for _, typ := range f.Types {
		for _, res := range typ.Resources {
			w.WriteUint32(uint32(len(res.Data)))
			w.WriteBytes(res.Data)
			w.PadToEven()
		}
	}

	// Map header
	w.WriteZeros(16 + 4 + 2) // reserved for header copy, next map handle, file ref
	w.WriteUint16(f.Attributes)
	w.WriteUint16(mapHeaderSize)
	w.WriteUint16(uint16(mapHeaderSize + typeListLen + refListLen))
	w.WriteInt16(int16(len(f.Types) - 1))

	// Type list. Reference list offsets are relative to the type list
	// start, so the first list begins right after the last type entry.
	nextRefOff := typeListLen
	for _, typ := range f.Types {
		if err := w.WriteFixedString(typ.Code, 4); err != nil {
			return nil, fmt.Errorf("resource type %q: %w", typ.Code, err)
		}
		w.WriteUint16(uint16(len(typ.Resources) - 1))
		w.WriteUint16(uint16(nextRefOff))
		nextRefOff += len(typ.Resources) * refEntrySize
	}

	// Reference list
	li := 0
	for _, typ := range f.Types {
		for _, res := range typ.Resources {
			w.WriteInt16(res.ID)
			w.WriteUint16(layouts[li].nameOff)
			w.WriteUint8(res.Attributes)
			if err := w.WriteUint24(layouts[li].dataOff); err != nil {
				return nil, fmt.Errorf("resource %q %d: data area exceeds 24-bit offsets: %w", typ.Code, res.ID, err)
			}
			w.WriteUint32(0) // reserved for handle
			li++
		}
	}

	// Name list
	for _, typ := range f.Types {
		for _, res := range typ.Resources {
			if res.Name == "" {
				continue
			}
			if err := w.WritePascalString(res.Name, -1); err != nil {
				return nil, fmt.Errorf("resource %q %d: name: %w", typ.Code, res.ID, err)
			}
		}
	}

	return w.Bytes(), nil
}

// validate checks the fork invariants before serialization
func (f *Fork) validate() error {
	seen := make(map[string]map[int16]bool)
	for _, typ := range f.Types {
		if len(typ.Code) != 4 {
			return fmt.Errorf("resource type code %q: %w", typ.Code, binio.ErrValueOutOfRange)
		}
		if len(typ.Resources) == 0 {
			return fmt.Errorf("resource type %q has no resources and should be removed before serialization", typ.Code)
		}
		for _, res := range typ.Resources {
			if len(res.Name) > 255 {
				return fmt.Errorf("resource %q %d: name longer than 255 bytes: %w", typ.Code, res.ID, binio.ErrValueOutOfRange)
			}
			if seen[typ.Code] == nil {
				seen[typ.Code] = make(map[int16]bool)
			}
			if seen[typ.Code][res.ID] {
				return fmt.Errorf("resource %q %d: %w", typ.Code, res.ID, ErrDuplicateResource)
			}
			seen[typ.Code][res.ID] = true
		}
	}
	return nil
}
