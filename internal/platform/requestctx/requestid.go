// Package requestctx carries per-request identifiers through contexts.
package requestctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID is the header that carries request identifiers between the
// console, the API client and the backend.
const HeaderRequestID = "X-Request-ID"

type requestIDContextKey struct{}

// NewRequestID returns a fresh random request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores a request identifier in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, strings.TrimSpace(requestID))
}

// RequestIDFromContext returns the request identifier stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// EnsureRequestID returns ctx with a request identifier, generating one when
// absent, along with the identifier.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewRequestID()
	return WithRequestID(ctx, id), id
}
