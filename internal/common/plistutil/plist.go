// Package plistutil provides utilities for working with property lists
package plistutil

import (
	"bytes"
	"fmt"
	"os"

	"github.com/deploymenttheory/go-classicbox/internal/common/errors"
	"github.com/deploymenttheory/go-classicbox/internal/common/fsutil"
	"howett.net/plist"
)

// Format represents the plist format
type Format int

const (
	// FormatXML is the XML plist format
	FormatXML Format = iota
	// FormatBinary is the binary plist format
	FormatBinary
)

func plistFormat(format Format) int {
	if format == FormatBinary {
		return plist.BinaryFormat
	}
	return plist.XMLFormat
}

// Marshal serializes a value as an indented plist document
func Marshal(value interface{}, format Format) ([]byte, error) {
	var buf bytes.Buffer
	encoder := plist.NewEncoderForFormat(&buf, plistFormat(format))
	if format == FormatXML {
		encoder.Indent("\t")
	}
	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}
	return buf.Bytes(), nil
}

// ReadPlist reads a property list file into a map
func ReadPlist(path string) (map[string]interface{}, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrPathNotAccessible, path)
	}

	var result map[string]interface{}
	decoder := plist.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, err.Error())
	}
	return result, nil
}

// WritePlist writes a value to a property list file in the given format
func WritePlist(path string, value interface{}, format Format) error {
	dir, _ := fsutil.SplitPath(path)
	if dir != "" {
		if err := fsutil.CreateDirIfNotExists(dir); err != nil {
			return fmt.Errorf("%w: failed to create directory", errors.ErrPathNotAccessible)
		}
	}

	data, err := Marshal(value, format)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, data, 0o644); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, path)
	}
	return nil
}
