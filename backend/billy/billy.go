package billy

import (
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/internal/pathutil"
)

// Backend exposes a billy.Filesystem as a tree of named handles.
type Backend struct {
	bfs   billy.Filesystem
	btype core.BackendType
}

// NewMemory creates an in-memory backend. The tree is initially empty.
func NewMemory() *Backend {
	return &Backend{bfs: memfs.New(), btype: core.BackendTypeMemory}
}

// NewLocal creates a local-disk backend rooted at dir. All handles are
// scoped under dir; the tree cannot reach outside it.
func NewLocal(dir string) *Backend {
	return &Backend{bfs: osfs.New(dir), btype: core.BackendTypeLocal}
}

// Wrap adapts an existing billy.Filesystem, for callers that already hold
// one (e.g. from go-git).
func Wrap(bfs billy.Filesystem) *Backend {
	return &Backend{bfs: bfs, btype: core.BackendTypeUnknown}
}

// Unwrap returns the underlying billy.Filesystem.
func (b *Backend) Unwrap() billy.Filesystem {
	return b.bfs
}

// Supported reports whether the backend holds a usable filesystem.
func (b *Backend) Supported() bool {
	return b != nil && b.bfs != nil
}

// Root returns the top-level directory handle.
func (b *Backend) Root() (core.DirectoryHandle, error) {
	if !b.Supported() {
		return nil, core.ErrUnsupported
	}
	return &dirHandle{bfs: b.bfs}, nil
}

// Type returns the underlying backend type.
func (b *Backend) Type() core.BackendType {
	return b.btype
}

// dirHandle is a path-scoped directory view. The root handle has an empty
// path and name.
type dirHandle struct {
	bfs  billy.Filesystem
	path string
	name string
}

func (d *dirHandle) Name() string {
	return d.name
}

// fsPath maps the handle's path into billy's addressing, where the root is
// the current directory.
func (d *dirHandle) fsPath() string {
	if d.path == "" {
		return "."
	}
	return d.path
}

func (d *dirHandle) Directory(name string, create bool) (core.DirectoryHandle, error) {
	p := pathutil.Join(d.path, name)

	fi, err := d.bfs.Stat(p)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: p, Err: core.ErrNotDirectory}
		}
	case os.IsNotExist(err):
		if !create {
			return nil, err
		}
		if err := d.bfs.MkdirAll(p, 0o755); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &dirHandle{bfs: d.bfs, path: p, name: name}, nil
}

func (d *dirHandle) File(name string, create bool) (core.FileHandle, error) {
	p := pathutil.Join(d.path, name)

	fi, err := d.bfs.Stat(p)
	switch {
	case err == nil:
		if fi.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: p, Err: core.ErrIsDirectory}
		}
	case os.IsNotExist(err):
		if !create {
			return nil, err
		}
		// Materialize the file without truncating anything: the path is
		// known to be absent.
		f, cerr := d.bfs.OpenFile(p, os.O_WRONLY|os.O_CREATE, 0o644)
		if cerr != nil {
			return nil, cerr
		}
		if cerr := f.Close(); cerr != nil {
			return nil, cerr
		}
	default:
		return nil, err
	}

	return &fileHandle{bfs: d.bfs, path: p, name: name}, nil
}

func (d *dirHandle) Remove(name string) error {
	return d.bfs.Remove(pathutil.Join(d.path, name))
}

func (d *dirHandle) Children() ([]string, error) {
	infos, err := d.bfs.ReadDir(d.fsPath())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	return names, nil
}

// fileHandle is a path-scoped file view.
type fileHandle struct {
	bfs  billy.Filesystem
	path string
	name string
}

func (f *fileHandle) Name() string {
	return f.name
}

func (f *fileHandle) Read() ([]byte, error) {
	return util.ReadFile(f.bfs, f.path)
}

func (f *fileHandle) ReadText() (string, error) {
	raw, err := f.Read()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (f *fileHandle) Writable() (core.WritableStream, error) {
	// Create truncates, which gives the stream replace-content semantics.
	return f.bfs.Create(f.path)
}

// Compile-time interface checks.
var (
	_ core.Backend         = (*Backend)(nil)
	_ core.DirectoryHandle = (*dirHandle)(nil)
	_ core.FileHandle      = (*fileHandle)(nil)
)
