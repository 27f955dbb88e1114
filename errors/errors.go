package errors

import "fmt"

// StorageError extends the standard error interface with structured
// information for consistent error handling across the operation layer.
type StorageError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message, without the
	// wrapped cause.
	Message() string

	// Unwrap returns the wrapped cause for errors.Is and errors.As
	// compatibility. Returns nil if no cause was wrapped.
	Unwrap() error
}

// storageError is the concrete implementation of StorageError.
// It is private to enforce construction through package functions.
type storageError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	cause          error
}

// Error returns the string representation of the error.
// Format: "[CODE] message" or "[CODE] message: cause" if a cause is present.
func (e *storageError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the error code.
func (e *storageError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *storageError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *storageError) Message() string {
	return e.message
}

// Unwrap returns the wrapped cause for standard library compatibility.
func (e *storageError) Unwrap() error {
	return e.cause
}
