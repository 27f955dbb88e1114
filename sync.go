package opfskit

import "github.com/river0g/opfs-kit/errors"

// The backends this layer runs over have no synchronous access mode, so
// the synchronous entry points exist only to fail loudly. They are part of
// the surface for interface compatibility and fail immediately rather than
// silently degrading to a blocking emulation.

// ReadFileSync always fails with UNSUPPORTED. Use ReadFile.
func (f *FS) ReadFileSync(path string, args ...any) (FileData, error) {
	return FileData{}, errors.New(errors.CodeUnsupported,
		"synchronous reads are not supported by asynchronous backends; use ReadFile")
}

// WriteFileSync always fails with UNSUPPORTED. Use WriteFile.
func (f *FS) WriteFileSync(path string, data any, args ...any) error {
	return errors.New(errors.CodeUnsupported,
		"synchronous writes are not supported by asynchronous backends; use WriteFile")
}

// ExistsSync always fails with UNSUPPORTED. Use Exists.
func (f *FS) ExistsSync(path string) (bool, error) {
	return false, errors.New(errors.CodeUnsupported,
		"synchronous existence checks are not supported by asynchronous backends; use Exists")
}
