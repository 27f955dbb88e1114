package errors

import "fmt"

// New creates a new StorageError with the given code and message.
// The classification is determined by the code's default mapping.
func New(code ErrorCode, message string) StorageError {
	return &storageError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new StorageError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) StorageError {
	return &storageError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        fmt.Sprintf(format, args...),
	}
}
