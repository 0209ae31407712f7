// Package binio provides bounds-checked big-endian readers and writers for
// the classic Mac OS on-disk structures handled by this tool.
//
// Every format in scope (resource forks, MacBinary containers, alias
// records) is big-endian; there is no little-endian path here.
package binio

import (
	"errors"
	"fmt"
)

// Common errors surfaced by readers
var (
	// ErrUnexpectedEndOfData indicates the buffer was exhausted before a
	// field could be fully read.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")

	// ErrValueOutOfRange indicates a value cannot be represented in the
	// requested field width.
	ErrValueOutOfRange = errors.New("value out of range for field")
)

// DecodeError carries the structure, field and byte offset at which a
// decode failed, to aid debugging against real vintage files.
type DecodeError struct {
	Err    error  // the underlying error
	Struct string // the structure being decoded (e.g. "resource map header")
	Field  string // the field being decoded
	Offset int    // byte offset into the input buffer
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decoding %s: field %q at offset %d: %v", e.Struct, e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("decoding %s at offset %d: %v", e.Struct, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a DecodeError with the given context
func NewDecodeError(err error, structure, field string, offset int) error {
	return &DecodeError{
		Err:    err,
		Struct: structure,
		Field:  field,
		Offset: offset,
	}
}

// IsEndOfData returns true if the error indicates a truncated buffer
func IsEndOfData(err error) bool {
	return errors.Is(err, ErrUnexpectedEndOfData)
}
