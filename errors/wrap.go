package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the original
// error. The wrapped error is accessible via Unwrap and compatible with
// errors.Is and errors.As.
//
// If the cause is itself a StorageError, its classification is preserved.
// Otherwise the default classification for the code is used.
//
// Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) StorageError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var serr StorageError
	if errors.As(err, &serr) {
		classification = serr.Classification()
	}

	return &storageError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message while preserving the
// original error.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...any) StorageError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}
