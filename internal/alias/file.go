package alias

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/macbinary"
	"github.com/deploymenttheory/go-classicbox/internal/resourcefork"
)

// Resource and Finder metadata conventions for alias files
const (
	// ResourceType is the resource type code carrying an alias record
	ResourceType = "alis"

	// ResourceID is the id the Finder gives an alias file's record
	ResourceID = 0

	// File types an alias file is stamped with, by target kind
	FileTypeApplicationAlias = "adrp"
	FileTypeFolderAlias      = "fdrp"
	FileTypeVolumeAlias      = "hdsk"

	// CreatorFinder is the creator code for Finder-owned alias files
	CreatorFinder = "MACS"
)

// File is an alias file: one alias record carried as an 'alis' resource,
// plus the Finder-visible metadata of the file that holds the fork. The
// File owns its Record; the resource fork representation is produced and
// consumed by the codec, not held live.
type File struct {
	Record             Record
	ResourceName       string // conventionally "<target> alias"
	ResourceAttributes uint8

	// Finder metadata for the enclosing file. Not recoverable from a
	// bare resource fork; filled in by DecodeMacBinary.
	FileType    string
	FileCreator string
	FinderFlags uint8
}

// EncodeFork serializes the alias file as a resource fork holding the
// single 'alis' resource.
func (f *File) EncodeFork() ([]byte, error) {
	record, err := f.Record.Encode()
	if err != nil {
		return nil, fmt.Errorf("alias record: %w", err)
	}

	fork := &resourcefork.Fork{}
	if err := fork.Add(ResourceType, resourcefork.Resource{
		ID:         ResourceID,
		Name:       f.ResourceName,
		Attributes: f.ResourceAttributes,
		Data:       record,
	}); err != nil {
		return nil, err
	}
	return fork.Encode()
}

// DecodeFork parses an alias file from resource fork bytes, locating the
// 'alis' resource and decoding its record.
func DecodeFork(buf []byte) (*File, error) {
	fork, err := resourcefork.Decode(buf)
	if err != nil {
		return nil, err
	}
	return fromFork(fork)
}

func fromFork(fork *resourcefork.Fork) (*File, error) {
	res, err := fork.Resource(ResourceType, ResourceID)
	if errors.Is(err, resourcefork.ErrResourceNotFound) {
		// Finder-created aliases occasionally renumber the resource;
		// accept any id as long as the type matches
		for ti := range fork.Types {
			if fork.Types[ti].Code == ResourceType && len(fork.Types[ti].Resources) > 0 {
				res = &fork.Types[ti].Resources[0]
				err = nil
				break
			}
		}
	}
	if err != nil || res == nil {
		return nil, ErrMissingAliasResource
	}

	record, err := DecodeRecord(res.Data)
	if err != nil {
		return nil, err
	}
	return &File{
		Record:             *record,
		ResourceName:       res.Name,
		ResourceAttributes: res.Attributes,
	}, nil
}

// EncodeMacBinary serializes the alias file as a complete MacBinary
// container named filename, carrying the resource fork and the alias
// Finder metadata.
func (f *File) EncodeMacBinary(filename string) ([]byte, error) {
	fork, err := f.EncodeFork()
	if err != nil {
		return nil, err
	}

	mb := &macbinary.File{
		Header: macbinary.Header{
			Filename:    filename,
			FileType:    f.FileType,
			FileCreator: f.FileCreator,
			FinderFlags: f.FinderFlags | macbinary.FlagIsAlias,
		},
		ResourceFork: fork,
	}
	return mb.Encode()
}

// DecodeMacBinary parses a MacBinary-encoded alias file, recovering both
// the record and the Finder metadata.
func DecodeMacBinary(buf []byte) (*File, error) {
	mb, err := macbinary.Decode(buf)
	if err != nil {
		return nil, err
	}
	f, err := DecodeFork(mb.ResourceFork)
	if err != nil {
		return nil, err
	}
	f.FileType = mb.Header.FileType
	f.FileCreator = mb.Header.FileCreator
	f.FinderFlags = mb.Header.FinderFlags
	return f, nil
}
