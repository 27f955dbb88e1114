package errors

// ErrorClassification indicates whether an error may succeed on retry.
// Nothing in opfs-kit retries; the classification exists for callers that
// layer their own retry policy over the operation set.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may
	// succeed on retry, such as transient backend unavailability.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed
	// on retry, such as missing paths or invalid arguments.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be
// attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	// Backend failures may be transient (network, throttling, object
	// store hiccups); everything else in this layer is deterministic.
	CodeBackend: ClassificationRetryable,

	CodeUnsupported:   ClassificationPermanent,
	CodeNotFound:      ClassificationPermanent,
	CodeResolution:    ClassificationPermanent,
	CodeAlreadyExists: ClassificationPermanent,
	CodeInvalidInput:  ClassificationPermanent,
	CodeInvalidConfig: ClassificationPermanent,
	CodeInternal:      ClassificationPermanent,
	CodeUnknown:       ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error
// code. Unknown codes are permanent, which prevents inappropriate retries.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
