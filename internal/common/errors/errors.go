package errors

import (
	"errors"
)

var (
	// General Errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnsupportedFile   = errors.New("unsupported file format")
	ErrPathNotAccessible = errors.New("path is not accessible")
	ErrOSNotSupported    = errors.New("operating system not supported")

	// File & Directory Errors
	ErrFileNotFound        = errors.New("file not found")
	ErrFilePermissionError = errors.New("error setting file permissions")
	ErrFileReadError       = errors.New("error reading file")
	ErrFileWriteError      = errors.New("error writing to file")
	ErrDirNotFound         = errors.New("directory not found")
)
