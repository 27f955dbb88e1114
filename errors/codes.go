package errors

// ErrorCode identifies a specific error condition.
// Codes are string-based for debuggability and log readability.
type ErrorCode string

const (
	// CodeUnsupported indicates the storage capability is absent, or a
	// synchronous-only entry point was invoked against an asynchronous
	// backend.
	CodeUnsupported ErrorCode = "UNSUPPORTED"

	// CodeNotFound indicates a path segment or leaf does not exist when
	// it was required to.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeResolution indicates root handle initialization failed, so no
	// path could be resolved at all.
	CodeResolution ErrorCode = "RESOLUTION_FAILED"

	// CodeBackend indicates a wrapped failure from an underlying handle
	// operation (read, write, enumerate, delete).
	CodeBackend ErrorCode = "BACKEND_ERROR"

	// CodeAlreadyExists indicates an entry already exists and cannot be
	// created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeInvalidInput indicates a malformed path or argument list.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a backend configuration error.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeInternal indicates an internal error in this layer.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
