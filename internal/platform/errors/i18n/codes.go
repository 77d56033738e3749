package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeAPIEnvelope        = "API_ENVELOPE"
	CodeAPIUnauthorized    = "API_UNAUTHORIZED"
	CodeAPIAuthRequired    = "API_AUTH_REQUIRED"
	CodeAPITransport       = "API_TRANSPORT"
	CodeAPIDecode          = "API_DECODE"
	CodeAPIInvalidArgument = "API_INVALID_ARGUMENT"
	CodeSessionStore       = "SESSION_STORE"
)
