package errors

import (
	stderrors "errors"
	"strconv"
)

// Domain is the error domain for kafkaview console errors.
const Domain = "github.com/louisbranch/kafkaview"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // User-facing message
	Metadata map[string]string // Additional context (status, envelope code)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// HTTPStatus returns the HTTP status recorded on err, or 0.
func HTTPStatus(err error) int {
	return metadataInt(err, MetaHTTPStatus)
}

// EnvelopeCode returns the envelope code recorded on err, or 0.
func EnvelopeCode(err error) int {
	return metadataInt(err, MetaEnvelopeCode)
}

func metadataInt(err error, key string) int {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) || domainErr.Metadata == nil {
		return 0
	}
	value, convErr := strconv.Atoi(domainErr.Metadata[key])
	if convErr != nil {
		return 0
	}
	return value
}
