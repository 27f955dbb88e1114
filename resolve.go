package opfskit

import (
	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/errors"
	"github.com/river0g/opfs-kit/internal/pathutil"
)

// ensureRoot returns the memoized root directory handle, initializing it on
// first use. Concurrent first callers share a single in-flight
// initialization through singleflight, so the backend sees at most one
// Root request per initialization attempt. A failed attempt is not
// memoized; a later call starts a fresh one.
func (f *FS) ensureRoot() (core.DirectoryHandle, error) {
	if root := f.cachedRoot(); root != nil {
		return root, nil
	}

	v, err, _ := f.initGroup.Do("root", func() (any, error) {
		// A caller that lost the race to a finished initialization
		// lands here after the winner stored the root.
		if root := f.cachedRoot(); root != nil {
			return root, nil
		}

		if !core.Supported(f.backend) {
			return nil, errors.New(errors.CodeUnsupported, "storage backend is not available")
		}

		root, err := f.backend.Root()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeResolution, "Error resolving storage root")
		}

		f.mu.Lock()
		f.root = root
		f.mu.Unlock()

		f.logger.Debug("storage root initialized", "backend", f.backend.Type().String())
		return root, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(core.DirectoryHandle), nil
}

func (f *FS) cachedRoot() core.DirectoryHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.root
}

// resolveDirectory walks every non-empty segment of path as a directory,
// starting at the root. When create is true, missing segments are created
// as the walk proceeds; when false, the first absent segment fails the
// resolution. An all-empty path resolves to the root itself.
func (f *FS) resolveDirectory(path string, create bool) (core.DirectoryHandle, error) {
	dir, err := f.ensureRoot()
	if err != nil {
		return nil, err
	}

	for _, seg := range pathutil.Segments(path) {
		next, err := dir.Directory(seg, create)
		if err != nil {
			return nil, err
		}
		dir = next
	}
	return dir, nil
}

// resolveParent splits path into its directory chain and leaf name,
// resolves the chain without creating anything, and returns the parent
// handle together with the leaf. A root-level path skips directory
// resolution entirely and parents against the root. A path with no leaf
// at all (such as "/") cannot name a file.
func (f *FS) resolveParent(path string) (core.DirectoryHandle, string, error) {
	parents, leaf, ok := pathutil.SplitLeaf(path)
	if !ok {
		return nil, "", errors.Newf(errors.CodeInvalidInput, "path %q has no file name", path)
	}

	dir, err := f.ensureRoot()
	if err != nil {
		return nil, "", err
	}

	for _, seg := range parents {
		dir, err = dir.Directory(seg, false)
		if err != nil {
			return nil, "", err
		}
	}
	return dir, leaf, nil
}
