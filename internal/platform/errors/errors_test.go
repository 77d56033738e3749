package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeAPITransport, "Network Error", fmt.Errorf("dial tcp: refused"))
	if !stderrors.Is(err, New(CodeAPITransport, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeAPIEnvelope, "")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestErrorUnwrapReachesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("boom")
	err := fmt.Errorf("list clusters: %w", Wrap(CodeAPITransport, "Network Error", cause))
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if got := CodeOf(err); got != CodeAPITransport {
		t.Fatalf("CodeOf() = %q, want %q", got, CodeAPITransport)
	}
}

func TestMetadataAccessors(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeAPIEnvelope, "topic exists", map[string]string{
		MetaHTTPStatus:   "200",
		MetaEnvelopeCode: "500",
	})
	if got := HTTPStatus(err); got != http.StatusOK {
		t.Fatalf("HTTPStatus() = %d, want %d", got, http.StatusOK)
	}
	if got := EnvelopeCode(err); got != 500 {
		t.Fatalf("EnvelopeCode() = %d, want 500", got)
	}
	if got := HTTPStatus(fmt.Errorf("plain")); got != 0 {
		t.Fatalf("HTTPStatus(plain) = %d, want 0", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, CodeUnknown)
	}
}

func TestCodeClassification(t *testing.T) {
	t.Parallel()

	if !CodeAPIUnauthorized.IsAuthFailure() || !CodeAPIAuthRequired.IsAuthFailure() {
		t.Fatal("expected auth codes to be auth failures")
	}
	if CodeAPITransport.IsAuthFailure() {
		t.Fatal("transport failure is not an auth failure")
	}
	if got := CodeAPIInvalidArgument.HTTPStatus(); got != http.StatusBadRequest {
		t.Fatalf("HTTPStatus() = %d, want %d", got, http.StatusBadRequest)
	}
	if got := CodeAPIAuthRequired.HTTPStatus(); got != http.StatusUnauthorized {
		t.Fatalf("HTTPStatus() = %d, want %d", got, http.StatusUnauthorized)
	}
}
