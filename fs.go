package opfskit

import (
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/river0g/opfs-kit/content"
	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/errors"
)

// FS is the path-addressed storage surface layered over a handle-graph
// backend. Every operation re-resolves its path from the memoized root, so
// there is no path-to-handle cache to invalidate; correctness comes from
// always re-walking, which is acceptable because backend lookups are
// assumed cheap and consistent.
//
// Operations on the same path issued concurrently are NOT serialized by
// this layer. If two writes to one path race, the final content is
// determined by whichever writable stream's close lands last in the
// backend ("last close wins"). Callers that need strict ordering must
// serialize their own writes.
type FS struct {
	backend core.Backend
	logger  *slog.Logger

	mu        sync.Mutex
	root      core.DirectoryHandle
	initGroup singleflight.Group
}

// Option configures an FS.
type Option func(*FS)

// WithLogger attaches a structured logger. Operations log at debug level.
// Without this option the FS is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FS) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a path-addressed filesystem over the given backend. The
// backend's root handle is acquired lazily on the first operation, not
// here; a nil or unsupported backend surfaces as an UNSUPPORTED error from
// that first operation.
func New(backend core.Backend, opts ...Option) *FS {
	f := &FS{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Supported is the capability probe: it reports whether b is a usable
// storage backend. A nil backend is never supported.
func Supported(b core.Backend) bool {
	return core.Supported(b)
}

// FileData is the result of a read: the file's bytes together with the
// encoding the read was requested under. The zero FileData decodes to the
// empty string, which is the fallback value delivered to callbacks on
// failed reads.
type FileData struct {
	buf *content.Buffer
	enc content.Encoding
}

// Text returns the content decoded under the read's encoding: UTF-8 text
// for utf8 reads, Base64 text for base64 reads, and a UTF-8 interpretation
// for anything else.
func (d FileData) Text() string {
	return d.buf.Decode(d.enc)
}

// Bytes returns the raw content bytes.
func (d FileData) Bytes() []byte {
	return d.buf.Bytes()
}

// Buffer returns the underlying byte container.
func (d FileData) Buffer() *content.Buffer {
	return d.buf
}

// Encoding returns the encoding the read was requested under.
func (d FileData) Encoding() content.Encoding {
	return d.enc
}

// Completion callback shapes for the callback calling convention. Every
// operation accepts at most one callback in its trailing argument list; a
// callback call returns a nil deferred and delivers the outcome through
// the callback's first (error) argument instead.
type (
	// ReadCallback receives a read's outcome. On failure data is the
	// zero FileData, whose Text is "".
	ReadCallback = func(err error, data FileData)
	// DoneCallback receives a write-style operation's outcome.
	DoneCallback = func(err error)
	// ExistsCallback receives an existence check's outcome.
	ExistsCallback = func(err error, exists bool)
	// ReadDirCallback receives a directory listing's outcome.
	ReadDirCallback = func(err error, names []string)
)

// ReadFile reads the file at path. Trailing arguments may supply an
// encoding ("utf8" default, "base64", "binary"), an Options record, and/or
// a ReadCallback, per the classification rules on classifyArgs.
//
// utf8 reads decode through the backend's text decode; base64 and binary
// reads fetch raw bytes and attach the requested decoding to the result.
func (f *FS) ReadFile(path string, args ...any) *Deferred[FileData] {
	spec := classifyArgs[ReadCallback](args)
	return dispatch(func() (FileData, error) {
		return f.readFile(path, spec.encoding)
	}, spec.callback)
}

func (f *FS) readFile(path string, enc content.Encoding) (FileData, error) {
	dir, leaf, err := f.resolveParent(path)
	if err != nil {
		return FileData{}, wrapOp(err, "Error reading file")
	}

	fh, err := dir.File(leaf, false)
	if err != nil {
		return FileData{}, wrapOp(err, "Error reading file")
	}

	enc = content.ParseEncoding(string(enc))
	var buf *content.Buffer
	if enc == content.UTF8 {
		text, terr := fh.ReadText()
		if terr != nil {
			return FileData{}, wrapOp(terr, "Error reading file")
		}
		buf, _ = content.FromText(text, content.UTF8)
	} else {
		raw, rerr := fh.Read()
		if rerr != nil {
			return FileData{}, wrapOp(rerr, "Error reading file")
		}
		buf = content.FromBytes(raw)
	}

	f.logger.Debug("read file", "path", path, "bytes", buf.Len(), "encoding", string(enc))
	return FileData{buf: buf, enc: enc}, nil
}

// WriteFile writes data to the file at path, creating the file if absent
// and replacing its content otherwise. data may be a string, []byte, or
// *content.Buffer. A string under the base64 encoding is Base64-decoded
// into raw bytes before writing; any other string is written as UTF-8;
// byte-like data is written as-is.
//
// Parent directories are never created implicitly: writing under a
// directory that does not exist fails. Use Mkdir first.
func (f *FS) WriteFile(path string, data any, args ...any) *Deferred[struct{}] {
	spec := classifyArgs[DoneCallback](args)
	return dispatchVoid(func() error {
		return f.writeFile(path, data, spec.encoding)
	}, spec.callback)
}

func (f *FS) writeFile(path string, data any, enc content.Encoding) error {
	payload, err := writePayload(data, enc)
	if err != nil {
		return wrapOp(err, "Error writing file")
	}

	dir, leaf, err := f.resolveParent(path)
	if err != nil {
		return wrapOp(err, "Error writing file")
	}

	fh, err := dir.File(leaf, true)
	if err != nil {
		return wrapOp(err, "Error writing file")
	}

	w, err := fh.Writable()
	if err != nil {
		return wrapOp(err, "Error writing file")
	}

	// The stream must be closed on every exit: the write is never
	// durably committed until Close returns.
	_, werr := w.Write(payload)
	cerr := w.Close()
	if werr != nil {
		return wrapOp(werr, "Error writing file")
	}
	if cerr != nil {
		return wrapOp(cerr, "Error writing file")
	}

	f.logger.Debug("wrote file", "path", path, "bytes", len(payload))
	return nil
}

// writePayload normalizes the accepted data shapes into raw bytes under
// the call's encoding.
func writePayload(data any, enc content.Encoding) ([]byte, error) {
	switch v := data.(type) {
	case string:
		buf, err := content.FromText(v, enc)
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case []byte:
		return v, nil
	case *content.Buffer:
		return v.Bytes(), nil
	case nil:
		return nil, errors.New(errors.CodeInvalidInput, "write data must not be nil")
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unsupported write data type %T", data)
	}
}

// Exists reports whether a file exists at path. It never fails: any lookup
// failure anywhere along the path, including missing parents, an absent
// backend, or the path naming a directory, is reported as false.
func (f *FS) Exists(path string, args ...any) *Deferred[bool] {
	spec := classifyArgs[ExistsCallback](args)
	return dispatch(func() (bool, error) {
		dir, leaf, err := f.resolveParent(path)
		if err != nil {
			return false, nil
		}
		if _, err := dir.File(leaf, false); err != nil {
			return false, nil
		}
		return true, nil
	}, spec.callback)
}

// Unlink removes the entry named by path from its parent directory.
func (f *FS) Unlink(path string, args ...any) *Deferred[struct{}] {
	spec := classifyArgs[DoneCallback](args)
	return dispatchVoid(func() error {
		dir, leaf, err := f.resolveParent(path)
		if err != nil {
			return wrapOp(err, "Error deleting file")
		}
		if err := dir.Remove(leaf); err != nil {
			return wrapOp(err, "Error deleting file")
		}
		f.logger.Debug("removed entry", "path", path)
		return nil
	}, spec.callback)
}

// Mkdir creates the directory named by path. Every missing segment along
// the path is created, whether or not Options.Recursive was requested; the
// flag is accepted for interface compatibility only. Creating a directory
// that already exists succeeds.
func (f *FS) Mkdir(path string, args ...any) *Deferred[struct{}] {
	spec := classifyArgs[DoneCallback](args)
	return dispatchVoid(func() error {
		if _, err := f.resolveDirectory(path, true); err != nil {
			return wrapOp(err, "Error creating directory")
		}
		f.logger.Debug("created directory", "path", path)
		return nil
	}, spec.callback)
}

// ReadDir lists the immediate child names of the directory at path, in
// backend enumeration order. The order is not guaranteed to be sorted and
// the listing is not recursive.
func (f *FS) ReadDir(path string, args ...any) *Deferred[[]string] {
	spec := classifyArgs[ReadDirCallback](args)
	return dispatch(func() ([]string, error) {
		dir, err := f.resolveDirectory(path, false)
		if err != nil {
			return nil, wrapOp(err, "Error reading directory")
		}
		names, err := dir.Children()
		if err != nil {
			return nil, wrapOp(err, "Error reading directory")
		}
		return names, nil
	}, spec.callback)
}

// wrapOp wraps an underlying failure with the operation's descriptive
// message, choosing the error code from the cause: missing entries are
// NOT_FOUND, unsupported/initialization failures keep their code, and
// everything else is a BACKEND_ERROR.
func wrapOp(err error, message string) error {
	if err == nil {
		return nil
	}
	switch code := errors.GetCode(err); code {
	case errors.CodeUnsupported, errors.CodeResolution, errors.CodeInvalidInput:
		return errors.Wrap(err, code, message)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, errors.CodeNotFound, message)
	}
	return errors.Wrap(err, errors.CodeBackend, message)
}
