package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or carries no StorageError in its
// chain. The outermost StorageError in the chain wins.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var serr StorageError
	if stderrors.As(err, &serr) {
		return serr.Code()
	}

	return CodeUnknown
}

// IsCode reports whether the outermost StorageError in err's chain carries
// the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent for nil and non-structured errors; the
// safe default prevents inappropriate retry attempts.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var serr StorageError
	if stderrors.As(err, &serr) {
		return serr.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false for nil and non-structured errors.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
