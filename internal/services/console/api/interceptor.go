package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/platform/requestctx"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 32 << 20

// call sends one envelope request and decodes the unwrapped data into out.
// out may be nil when the caller only needs success or failure.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	target := joinURL(c.apiBase, path)
	c.logRequest(method, target, query, body)

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return platformerrors.Wrap(platformerrors.CodeAPIInvalidArgument, "encode request body", err)
		}
		payload = bytes.NewReader(encoded)
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", target),
	)

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeAPIInvalidArgument, fmt.Sprintf("build %s request", method), err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		callErr := c.transportFailure(ctx, err)
		span.RecordError(callErr)
		span.SetStatus(otelcodes.Error, callErr.Error())
		return callErr
	}
	defer drain(resp.Body)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	callErr := c.handleResponse(resp, out)
	if callErr != nil {
		span.RecordError(callErr)
		span.SetStatus(otelcodes.Error, callErr.Error())
	}
	return callErr
}

// decorate adds the request id, trace context and forwarded cookies.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	_, requestID := requestctx.EnsureRequestID(ctx)
	req.Header.Set(requestctx.HeaderRequestID, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	c.attachCookies(req)
}

// logRequest writes the debug line for an outgoing call. A formatting failure
// is logged and never blocks the request.
func (c *Client) logRequest(method, target string, query url.Values, body any) {
	if !c.debug {
		return
	}
	data := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.logger.Printf("[API Request] could not format log: %v", err)
			return
		}
		data = string(encoded)
	}
	params := ""
	if len(query) > 0 {
		params = query.Encode()
	}
	c.logger.Printf("[API Request] %s %s params=%s data=%s", strings.ToUpper(method), target, params, data)
}

// handleResponse applies the decision table; the first matching row wins.
func (c *Client) handleResponse(resp *http.Response, out any) error {
	status := resp.StatusCode
	location := resp.Header.Get("Location")

	if status >= 200 && status < 400 {
		if status == http.StatusFound && strings.Contains(location, routepath.Login) {
			return c.authFailure(platformerrors.CodeAPIUnauthorized, status, location)
		}
		return c.unwrapEnvelope(resp, out)
	}

	switch status {
	case http.StatusFound:
		// Unreachable while 3xx is accepted above; kept so the failure
		// branch covers every auth status on its own.
		return c.authFailure(platformerrors.CodeAPIUnauthorized, status, location)
	case http.StatusUnauthorized, http.StatusForbidden:
		return c.authFailure(platformerrors.CodeAPIAuthRequired, status, location)
	}

	message := fmt.Sprintf("Request failed with status code %d", status)
	c.notify(message)
	return platformerrors.WrapWithMetadata(
		platformerrors.CodeAPITransport,
		message,
		map[string]string{platformerrors.MetaHTTPStatus: strconv.Itoa(status)},
		fmt.Errorf("backend returned %s", resp.Status),
	)
}

func (c *Client) unwrapEnvelope(resp *http.Response, out any) error {
	status := strconv.Itoa(resp.StatusCode)
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportFailure(resp.Request.Context(), err)
	}

	var envelope rawEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		message := c.messages.Format(string(platformerrors.CodeAPIEnvelope), nil)
		c.notify(message)
		return platformerrors.WrapWithMetadata(
			platformerrors.CodeAPIDecode,
			message,
			map[string]string{platformerrors.MetaHTTPStatus: status},
			fmt.Errorf("decode envelope: %w", err),
		)
	}

	if !envelope.succeeded() {
		message := envelope.message()
		if message == "" {
			message = c.messages.Format(string(platformerrors.CodeAPIEnvelope), nil)
		}
		c.notify(message)
		return platformerrors.WithMetadata(platformerrors.CodeAPIEnvelope, message, map[string]string{
			platformerrors.MetaHTTPStatus:   status,
			platformerrors.MetaEnvelopeCode: envelope.code(),
		})
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		message := c.messages.Format(string(platformerrors.CodeAPIDecode), nil)
		c.notify(message)
		return platformerrors.WrapWithMetadata(
			platformerrors.CodeAPIDecode,
			message,
			map[string]string{platformerrors.MetaHTTPStatus: status},
			fmt.Errorf("decode envelope data: %w", err),
		)
	}
	return nil
}

// authFailure clears the session flag and navigates to the login route.
// Authentication failures are not notified.
func (c *Client) authFailure(code platformerrors.Code, status int, location string) error {
	c.clearSession()
	c.navigate(routepath.Login)
	metadata := map[string]string{platformerrors.MetaHTTPStatus: strconv.Itoa(status)}
	if location != "" {
		metadata[platformerrors.MetaLocation] = location
	}
	return platformerrors.WithMetadata(code, c.messages.Format(string(code), nil), metadata)
}

// transportFailure notifies a network-level failure. Only the client's own
// timeout is reported as a timeout; a caller's deadline or cancellation gets
// the generic message.
func (c *Client) transportFailure(ctx context.Context, err error) error {
	message := c.messages.Format(string(platformerrors.CodeAPITransport), nil)
	if ctx.Err() == nil && isTimeout(err) {
		message = fmt.Sprintf("timeout of %dms exceeded", c.http.Timeout.Milliseconds())
	}
	c.notify(message)
	return platformerrors.Wrap(platformerrors.CodeAPITransport, message, err)
}
