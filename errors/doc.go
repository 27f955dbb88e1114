// Package errors provides the structured error layer for opfs-kit.
//
// It extends Go's standard error handling with string error codes and a
// retry classification while staying fully compatible with errors.Is,
// errors.As, and errors.Unwrap. Every failure surfaced by the operation
// layer is a StorageError carrying a code from the storage taxonomy
// (UNSUPPORTED, NOT_FOUND, RESOLUTION_FAILED, BACKEND_ERROR, ...) and,
// when it wraps an underlying cause, the full cause chain.
//
// Creating errors:
//
//	err := errors.New(errors.CodeNotFound, "no such entry")
//	err := errors.Wrap(cause, errors.CodeBackend, "Error reading file")
//
// Inspecting errors:
//
//	if errors.GetCode(err) == errors.CodeNotFound { ... }
//	if errors.IsRetryable(err) { ... }
//
// The classification is advisory: nothing in this module retries. Callers
// that add their own retry policy can use IsRetryable as the decision
// point.
package errors
