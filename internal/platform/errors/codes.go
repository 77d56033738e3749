// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// API envelope and transport errors
	CodeAPIEnvelope        Code = "API_ENVELOPE"
	CodeAPIUnauthorized    Code = "API_UNAUTHORIZED"
	CodeAPIAuthRequired    Code = "API_AUTH_REQUIRED"
	CodeAPITransport       Code = "API_TRANSPORT"
	CodeAPIDecode          Code = "API_DECODE"
	CodeAPIInvalidArgument Code = "API_INVALID_ARGUMENT"

	// Session errors
	CodeSessionStore Code = "SESSION_STORE"
)

// Metadata keys attached to API errors.
const (
	MetaHTTPStatus   = "http_status"
	MetaEnvelopeCode = "envelope_code"
	MetaLocation     = "location"
	MetaField        = "field"
)

// IsAuthFailure reports whether the code forces the login redirect.
func (c Code) IsAuthFailure() bool {
	return c == CodeAPIUnauthorized || c == CodeAPIAuthRequired
}

// HTTPStatus maps codes to the status the web console answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAPIInvalidArgument:
		return http.StatusBadRequest
	case CodeAPIUnauthorized, CodeAPIAuthRequired:
		return http.StatusUnauthorized
	case CodeAPITransport, CodeAPIDecode, CodeAPIEnvelope:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
