package resourcefork

import (
	"github.com/deploymenttheory/go-classicbox/internal/binio"
)

// Decode parses a resource fork from buf. Resource data is copied out of
// the buffer, so the result does not alias the input.
func Decode(buf []byte) (*Fork, error) {
	r := binio.NewReader(buf)

	// Fork header: four 32-bit offsets and lengths, then reserved space
	dataOff, err := r.ReadUint32()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource fork header", "offset_to_resource_data_area", r.Offset())
	}
	mapOff, err := r.ReadUint32()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource fork header", "offset_to_resource_map", r.Offset())
	}
	dataLen, err := r.ReadUint32()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource fork header", "resource_data_area_length", r.Offset())
	}
	mapLen, err := r.ReadUint32()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource fork header", "resource_map_length", r.Offset())
	}

	size := uint32(len(buf))
	if dataOff > size || dataLen > size-dataOff || mapOff > size || mapLen > size-mapOff {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource fork header", "offsets", 0)
	}

	// Resource map header. The first 22 bytes are reserved for in-memory
	// handles written back by the Resource Manager.
	if err := r.Seek(int(mapOff)); err != nil {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource map header", "", int(mapOff))
	}
	if err := r.Skip(16 + 4 + 2); err != nil {
		return nil, binio.NewDecodeError(binio.ErrUnexpectedEndOfData, "resource map header", "reserved", r.Offset())
	}
	attributes, err := r.ReadUint16()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource map header", "attributes", r.Offset())
	}
	typeListOff, err := r.ReadUint16()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource map header", "offset_to_resource_type_list", r.Offset())
	}
	nameListOff, err := r.ReadUint16()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource map header", "offset_to_resource_name_list", r.Offset())
	}

	fork := &Fork{Attributes: attributes}

	// Type list. The stored count is count-minus-one; an empty fork
	// stores -1.
	typeListBase := int(mapOff) + int(typeListOff)
	if err := r.Seek(typeListBase); err != nil {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource type list", "", typeListBase)
	}
	typeCountMinusOne, err := r.ReadInt16()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource type list", "resource_type_count_minus_one", r.Offset())
	}

	type typeEntry struct {
		code   string
		count  int
		refOff int
	}
	entries := make([]typeEntry, 0, typeCountMinusOne+1)
	for i := 0; i < int(typeCountMinusOne)+1; i++ {
		code, err := r.ReadFixedString(4)
		if err != nil {
			return nil, binio.NewDecodeError(err, "resource type entry", "code", r.Offset())
		}
		countMinusOne, err := r.ReadUint16()
		if err != nil {
			return nil, binio.NewDecodeError(err, "resource type entry", "resource_count_minus_one", r.Offset())
		}
		refOff, err := r.ReadUint16()
		if err != nil {
			return nil, binio.NewDecodeError(err, "resource type entry", "offset_to_reference_list", r.Offset())
		}
		entries = append(entries, typeEntry{code: code, count: int(countMinusOne) + 1, refOff: int(refOff)})
	}

	seen := make(map[string]map[int16]bool)
	for _, entry := range entries {
		// Reference list offsets are relative to the start of the type
		// list, which includes the count field.
		if err := r.Seek(typeListBase + entry.refOff); err != nil {
			return nil, binio.NewDecodeError(ErrMalformedFork, "resource reference list", entry.code, typeListBase+entry.refOff)
		}

		typ := Type{Code: entry.code}
		for i := 0; i < entry.count; i++ {
			id, err := r.ReadInt16()
			if err != nil {
				return nil, binio.NewDecodeError(err, "resource reference", "id", r.Offset())
			}
			nameOff, err := r.ReadUint16()
			if err != nil {
				return nil, binio.NewDecodeError(err, "resource reference", "offset_to_name", r.Offset())
			}
			attrs, err := r.ReadUint8()
			if err != nil {
				return nil, binio.NewDecodeError(err, "resource reference", "attributes", r.Offset())
			}
			resDataOff, err := r.ReadUint24()
			if err != nil {
				return nil, binio.NewDecodeError(err, "resource reference", "offset_to_data", r.Offset())
			}
			if err := r.Skip(4); err != nil { // reserved for handle
				return nil, binio.NewDecodeError(err, "resource reference", "reserved_for_handle", r.Offset())
			}

			if seen[entry.code] == nil {
				seen[entry.code] = make(map[int16]bool)
			}
			if seen[entry.code][id] {
				return nil, binio.NewDecodeError(ErrDuplicateResource, "resource reference", entry.code, r.Offset())
			}
			seen[entry.code][id] = true

			data, err := readResourceData(buf, dataOff, dataLen, resDataOff)
			if err != nil {
				return nil, err
			}
			name, err := readResourceName(buf, int(mapOff)+int(nameListOff), nameOff)
			if err != nil {
				return nil, err
			}

			typ.Resources = append(typ.Resources, Resource{
				ID:         id,
				Name:       name,
				Attributes: attrs,
				Data:       data,
			})
		}
		fork.Types = append(fork.Types, typ)
	}

	return fork, nil
}

// readResourceData slices one resource's bytes out of the data area using
// its 32-bit length prefix. The reference offset is relative to the start
// of the data area.
func readResourceData(buf []byte, dataOff, dataLen, resOff uint32) ([]byte, error) {
	if resOff >= dataLen {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource data", "offset_to_data", int(dataOff+resOff))
	}
	r := binio.NewReader(buf)
	if err := r.Seek(int(dataOff) + int(resOff)); err != nil {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource data", "offset_to_data", int(dataOff+resOff))
	}
	if dataLen-resOff < 4 {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource data", "length", int(dataOff+resOff))
	}
	length, err := r.ReadUint32()
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource data", "length", r.Offset())
	}
	if length > dataLen-resOff-4 {
		return nil, binio.NewDecodeError(ErrMalformedFork, "resource data", "length", r.Offset())
	}
	data, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, binio.NewDecodeError(err, "resource data", "data", r.Offset())
	}
	return data, nil
}

// readResourceName reads the Pascal string at nameOff within the name
// list, or returns "" for the no-name sentinel.
func readResourceName(buf []byte, nameListBase int, nameOff uint16) (string, error) {
	if nameOff == noNameSentinel {
		return "", nil
	}
	r := binio.NewReader(buf)
	if err := r.Seek(nameListBase + int(nameOff)); err != nil {
		return "", binio.NewDecodeError(ErrMalformedFork, "resource name", "offset_to_name", nameListBase+int(nameOff))
	}
	name, err := r.ReadPascalString(-1)
	if err != nil {
		return "", binio.NewDecodeError(err, "resource name", "name", r.Offset())
	}
	return name, nil
}
