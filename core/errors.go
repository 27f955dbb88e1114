package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrClosed is returned when an operation is performed on a closed
	// writable stream. Re-exported from io/fs for convenience.
	ErrClosed = fs.ErrClosed

	// ErrNotDirectory is returned when a path segment names an existing
	// entry that is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory is returned when a file lookup names an existing
	// directory entry.
	ErrIsDirectory = errors.New("is a directory")

	// ErrUnsupported is returned when an operation is not supported by the
	// backend, or when no backend capability is present at all.
	ErrUnsupported = errors.New("operation not supported")
)
