package core

import "io"

// BackendType represents the underlying type of storage backend.
type BackendType int

const (
	// BackendTypeUnknown indicates the backend type is unknown or unspecified.
	BackendTypeUnknown BackendType = iota
	// BackendTypeMemory indicates an in-memory backend.
	BackendTypeMemory
	// BackendTypeLocal indicates a local disk-backed backend.
	BackendTypeLocal
	// BackendTypeRemote indicates a remote backend (e.g., S3, cloud storage).
	BackendTypeRemote
)

// String returns a string representation of the BackendType.
func (t BackendType) String() string {
	switch t {
	case BackendTypeMemory:
		return "memory"
	case BackendTypeLocal:
		return "local"
	case BackendTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Backend is the storage capability consumed by the path-addressed layer.
//
// A backend exposes a tree of named handles: a single root directory handle
// from which child file and directory handles are obtained by name, never by
// path string. The chain of named lookups from the root IS the path; no
// backend-level path addressing exists.
type Backend interface {
	// Supported reports whether the backend capability is actually usable.
	// A backend value may exist while its underlying storage is absent or
	// unconfigured; Supported is the probe callers check before first use.
	Supported() bool

	// Root returns the backend's top-level directory handle.
	// It may fail even when Supported reports true, for example when the
	// underlying storage rejects the request. The caller is expected to
	// memoize the result; backends need not cache it themselves.
	Root() (DirectoryHandle, error)

	// Type returns the underlying backend type.
	Type() BackendType
}

// DirectoryHandle is an opaque reference to a container node in the backend
// tree. Handles are transient: they are owned by the call that requested
// them and are not cached across operations.
type DirectoryHandle interface {
	// Name returns the entry name of this directory within its parent.
	// The root directory's name is the empty string.
	Name() string

	// Directory returns the named child directory.
	// When create is true, a missing child is created; when false, a
	// missing child is an error wrapping ErrNotExist. Requesting an
	// existing entry that is not a directory is an error either way.
	Directory(name string, create bool) (DirectoryHandle, error)

	// File returns the named child file.
	// When create is true, a missing child is created empty; creation
	// never truncates an existing file. When create is false, a missing
	// child is an error wrapping ErrNotExist. Requesting an existing
	// entry that is a directory is an error either way.
	File(name string, create bool) (FileHandle, error)

	// Remove deletes the named child entry from this directory.
	Remove(name string) error

	// Children returns the names of the immediate children of this
	// directory, in backend enumeration order. The order is not
	// guaranteed to be sorted.
	Children() ([]string, error)
}

// FileHandle is an opaque reference to a leaf node in the backend tree.
type FileHandle interface {
	// Name returns the entry name of this file within its parent.
	Name() string

	// Read returns the file's entire content as raw bytes.
	Read() ([]byte, error)

	// ReadText returns the file's entire content decoded as text by the
	// backend. For all provided backends this is a UTF-8 interpretation
	// of the raw bytes.
	ReadText() (string, error)

	// Writable opens a scoped writable stream that replaces the file's
	// content. The write is not durably committed until the stream's
	// Close returns nil; abandoning a stream without closing it leaves
	// the file content unspecified.
	Writable() (WritableStream, error)
}

// WritableStream is a scoped write session on a file handle. Content
// written through the stream becomes the file's content once Close
// succeeds.
type WritableStream interface {
	io.Writer
	io.Closer
}

// Supported is the nil-safe capability probe: it reports whether b is a
// usable storage backend. A nil backend is never supported.
func Supported(b Backend) bool {
	return b != nil && b.Supported()
}
