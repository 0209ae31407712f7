// Package classicbox is the embeddable API for the classic Mac OS
// codecs: MacBinary containers, resource forks, and alias files. It
// re-exports the codec types so other programs can use them without
// going through the CLI.
package classicbox

import (
	"github.com/deploymenttheory/go-classicbox/internal/alias"
	"github.com/deploymenttheory/go-classicbox/internal/macbinary"
	"github.com/deploymenttheory/go-classicbox/internal/mactime"
	"github.com/deploymenttheory/go-classicbox/internal/resourcefork"
)

// MacBinary containers
type (
	MacBinaryFile   = macbinary.File
	MacBinaryHeader = macbinary.Header
)

// Resource forks
type (
	ResourceFork = resourcefork.Fork
	ResourceType = resourcefork.Type
	Resource     = resourcefork.Resource
)

// Alias records and files
type (
	AliasRecord = alias.Record
	AliasExtra  = alias.Extra
	AliasFile   = alias.File
	AliasTarget = alias.Target
)

// DecodeMacBinary parses a MacBinary I, II, or III file.
func DecodeMacBinary(buf []byte) (*MacBinaryFile, error) {
	return macbinary.Decode(buf)
}

// DecodeResourceFork parses a resource fork.
func DecodeResourceFork(buf []byte) (*ResourceFork, error) {
	return resourcefork.Decode(buf)
}

// DecodeAliasRecord parses a bare alias record.
func DecodeAliasRecord(buf []byte) (*AliasRecord, error) {
	return alias.DecodeRecord(buf)
}

// DecodeAliasFile parses an alias file from resource fork bytes.
func DecodeAliasFile(buf []byte) (*AliasFile, error) {
	return alias.DecodeFork(buf)
}

// NewAliasFile builds an alias file pointing at the given target,
// following the Finder's conventions.
func NewAliasFile(target AliasTarget) *AliasFile {
	return alias.NewFileForTarget(target)
}

// MacTimeNow returns the current time as a Mac timestamp, seconds
// since January 1, 1904.
func MacTimeNow() uint32 {
	return mactime.Now()
}
