// Package resourcefork decodes and encodes classic Mac OS resource forks.
//
// A resource fork is a container of typed, numbered resources: a fixed
// header, a data area holding each resource's bytes behind a 32-bit length
// prefix, and a resource map cross-referencing a type list, a reference
// list and a name list by relative byte offsets.
//
// Format reference: Inside Macintosh: More Macintosh Toolbox, "Resource
// Manager".
package resourcefork

import "errors"

var (
	// ErrMalformedFork indicates header offsets or lengths inconsistent
	// with the buffer, or a reference pointing outside the data area.
	ErrMalformedFork = errors.New("malformed resource fork")

	// ErrDuplicateResource indicates two resources sharing a (type, id)
	// pair within one fork.
	ErrDuplicateResource = errors.New("duplicate resource type and id")

	// ErrResourceNotFound is returned by lookups for an absent (type, id).
	ErrResourceNotFound = errors.New("resource not found")
)

// Resource attributes (the reference list flags byte)
const (
	AttrSysHeap   = 64 // read into system heap
	AttrPurgeable = 32
	AttrLocked    = 16
	AttrProtected = 8
	AttrPreload   = 4
	AttrChanged   = 2 // to be written to resource fork
)

// Resource map attributes
const (
	MapReadOnly = 128
	MapCompact  = 64
	MapChanged  = 32
)

// Layout constants. The fork header is 16 bytes of offsets and lengths
// followed by 240 reserved bytes; ResEdit rejects forks without the
// reserved area. The type count field at map offset 28 is counted as part
// of the type list, not the map header.
const (
	forkHeaderSize = 256
	mapHeaderSize  = 28
	typeEntrySize  = 8
	refEntrySize   = 12
	noNameSentinel = 0xFFFF
)

// Resource is a single entry in a fork
type Resource struct {
	ID         int16
	Name       string // empty if the resource is unnamed
	Attributes uint8  // Attr* bits
	Data       []byte
}

// Type groups the resources sharing a four-character type code, in the
// order they appear in the map
type Type struct {
	Code      string // exactly 4 bytes, e.g. "alis", "TEXT"
	Resources []Resource
}

// Fork is a decoded resource fork. Type order and resource order within a
// type are preserved from the source map so a decode/encode cycle is
// byte-stable.
type Fork struct {
	Attributes uint16 // Map* bits
	Types      []Type
}

// Resource finds the resource with the given type code and id
func (f *Fork) Resource(code string, id int16) (*Resource, error) {
	for ti := range f.Types {
		if f.Types[ti].Code != code {
			continue
		}
		for ri := range f.Types[ti].Resources {
			if f.Types[ti].Resources[ri].ID == id {
				return &f.Types[ti].Resources[ri], nil
			}
		}
	}
	return nil, ErrResourceNotFound
}

// Add appends a resource under the given type code, creating the type
// entry if needed. Fails if the (code, id) pair is already present.
func (f *Fork) Add(code string, res Resource) error {
	if _, err := f.Resource(code, res.ID); err == nil {
		return ErrDuplicateResource
	}
	for ti := range f.Types {
		if f.Types[ti].Code == code {
			f.Types[ti].Resources = append(f.Types[ti].Resources, res)
			return nil
		}
	}
	f.Types = append(f.Types, Type{Code: code, Resources: []Resource{res}})
	return nil
}

// resourceCount returns the total number of resources across all types
func (f *Fork) resourceCount() int {
	n := 0
	for _, t := range f.Types {
		n += len(t.Resources)
	}
	return n
}
