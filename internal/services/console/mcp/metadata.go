package mcp

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/platform/requestctx"
)

// errNotLoggedIn is returned by tools when the shared session is missing.
var errNotLoggedIn = errors.New("not logged in, run: kafkaview login")

// newCallContext tags ctx with a fresh request id sent to the backend.
func newCallContext(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := requestctx.NewRequestID()
	return requestctx.WithRequestID(ctx, requestID), requestID
}

// callToolResult builds a tool result carrying the correlation id.
func callToolResult(requestID string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Meta: map[string]any{requestctx.HeaderRequestID: requestID},
	}
}

// toolError wraps a backend failure for the calling tool.
func toolError(tool string, err error) error {
	if platformerrors.CodeOf(err).IsAuthFailure() {
		return fmt.Errorf("%s failed: %w: %w", tool, errNotLoggedIn, err)
	}
	return fmt.Errorf("%s failed: %w", tool, err)
}
