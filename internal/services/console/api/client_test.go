package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type harness struct {
	client    *Client
	store     *session.MemoryStore
	navigator *recordingNavigator
	notifier  *recordingNotifier
	logs      *bytes.Buffer
}

func newHarness(t *testing.T, handler http.HandlerFunc) harness {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	h := harness{
		store:     session.NewMemoryStore(),
		navigator: &recordingNavigator{},
		notifier:  &recordingNotifier{},
		logs:      &bytes.Buffer{},
	}
	if err := session.MarkLoggedIn(h.store); err != nil {
		t.Fatalf("mark logged in: %v", err)
	}
	client, err := New(Options{
		BaseURL:   server.URL,
		Session:   h.store,
		Navigator: h.navigator,
		Notifier:  h.notifier,
		Logger:    log.New(h.logs, "", 0),
		Debug:     true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.client = client
	return h
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "localhost:8080", "ftp://host", "http://"} {
		if _, err := New(Options{BaseURL: raw}); err == nil {
			t.Fatalf("New(%q) expected error", raw)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	client, err := New(Options{BaseURL: "http://localhost:8080/"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.apiBase != "http://localhost:8080/api" {
		t.Fatalf("apiBase = %q, want %q", client.apiBase, "http://localhost:8080/api")
	}
	if client.http.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", client.http.Timeout)
	}
	if client.http.CheckRedirect == nil {
		t.Fatal("expected redirect policy")
	}
}

func TestNewDoesNotMutateSuppliedHTTPClient(t *testing.T) {
	t.Parallel()

	supplied := &http.Client{Timeout: 5 * time.Second}
	client, err := New(Options{BaseURL: "http://localhost:8080", HTTPClient: supplied})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if supplied.CheckRedirect != nil {
		t.Fatal("supplied client was mutated")
	}
	if client.http.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", client.http.Timeout)
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, path, want string
	}{
		{base: "/api", path: "/clusters", want: "/api/clusters"},
		{base: "/api/", path: "clusters", want: "/api/clusters"},
		{base: "/api/", path: "/clusters", want: "/api/clusters"},
		{base: "/api", path: "clusters", want: "/api/clusters"},
		{base: "/api", path: "", want: "/api"},
	}
	for _, tc := range tests {
		if got := joinURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("joinURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestSuccessEnvelopeReturnsData(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"data":[{"id":1,"name":"local","bootstrapServers":"k:9092"}],"message":"ok"}`)
	})

	clusters, err := h.client.ListClusters(context.Background())
	if err != nil {
		t.Fatalf("ListClusters() error = %v", err)
	}
	if len(clusters) != 1 || clusters[0].ID != 1 || clusters[0].Name != "local" {
		t.Fatalf("ListClusters() = %+v", clusters)
	}
	if got := h.notifier.all(); len(got) != 0 {
		t.Fatalf("notifications = %v, want none", got)
	}
	if !session.IsLoggedIn(h.store) {
		t.Fatal("success must keep the session flag")
	}
}

func TestEnvelopeFailureNotifiesMessage(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":500,"data":null,"message":"Cluster not found"}`)
	})

	_, err := h.client.ListClusters(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Cluster not found" {
		t.Fatalf("error = %q, want %q", err.Error(), "Cluster not found")
	}
	if !errors.Is(err, platformerrors.New(platformerrors.CodeAPIEnvelope, "")) {
		t.Fatalf("error code = %s, want API_ENVELOPE", platformerrors.CodeOf(err))
	}
	if got := platformerrors.EnvelopeCode(err); got != 500 {
		t.Fatalf("EnvelopeCode() = %d, want 500", got)
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != "Cluster not found" {
		t.Fatalf("notifications = %v, want [Cluster not found]", got)
	}
	if len(h.navigator.visited()) != 0 {
		t.Fatal("envelope failures must not navigate")
	}
}

func TestEnvelopeFailureDefaultMessage(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":400}`)
	})

	_, err := h.client.ListClusters(context.Background())
	if err == nil || err.Error() != "Error" {
		t.Fatalf("error = %v, want Error", err)
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != "Error" {
		t.Fatalf("notifications = %v, want [Error]", got)
	}
}

func TestEnvelopeCodeIsComparedAsNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantErr   string
		wantCode  int
		wantNotes []string
		wantLen   int
	}{
		{name: "float success", body: `{"code":200.0,"data":[{"id":1,"name":"a"}]}`, wantLen: 1},
		{name: "exponent success", body: `{"code":2e2,"data":[]}`},
		{name: "string code keeps message", body: `{"code":"500","message":"boom"}`, wantErr: "boom", wantCode: 500, wantNotes: []string{"boom"}},
		{name: "string 200 is not success", body: `{"code":"200","data":[]}`, wantErr: "Error", wantCode: 200, wantNotes: []string{"Error"}},
		{name: "numeric message", body: `{"code":500,"message":42}`, wantErr: "42", wantCode: 500, wantNotes: []string{"42"}},
		{name: "missing code", body: `{"message":"no code"}`, wantErr: "no code", wantNotes: []string{"no code"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			})
			clusters, err := h.client.ListClusters(context.Background())
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("ListClusters() error = %v", err)
				}
				if len(clusters) != tc.wantLen {
					t.Fatalf("len(ListClusters()) = %d, want %d", len(clusters), tc.wantLen)
				}
				if got := h.notifier.all(); len(got) != 0 {
					t.Fatalf("notifications = %v, want none", got)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("ListClusters() error = %v, want %q", err, tc.wantErr)
			}
			if platformerrors.CodeOf(err) != platformerrors.CodeAPIEnvelope {
				t.Fatalf("code = %s, want API_ENVELOPE", platformerrors.CodeOf(err))
			}
			if got := platformerrors.EnvelopeCode(err); got != tc.wantCode {
				t.Fatalf("EnvelopeCode() = %d, want %d", got, tc.wantCode)
			}
			got := h.notifier.all()
			if strings.Join(got, "|") != strings.Join(tc.wantNotes, "|") {
				t.Fatalf("notifications = %v, want %v", got, tc.wantNotes)
			}
		})
	}
}

func TestNonEnvelopeBodyIsDecodeFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>login</html>"))
	})

	_, err := h.client.ListClusters(context.Background())
	if platformerrors.CodeOf(err) != platformerrors.CodeAPIDecode {
		t.Fatalf("code = %s, want API_DECODE", platformerrors.CodeOf(err))
	}
	if got := h.notifier.all(); len(got) != 1 || got[0] != "Error" {
		t.Fatalf("notifications = %v, want [Error]", got)
	}
}

func TestRedirectToLoginClearsSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://backend/login")
		w.WriteHeader(http.StatusFound)
	})

	_, err := h.client.ListClusters(context.Background())
	if err == nil || err.Error() != "Unauthorized" {
		t.Fatalf("error = %v, want Unauthorized", err)
	}
	if platformerrors.CodeOf(err) != platformerrors.CodeAPIUnauthorized {
		t.Fatalf("code = %s, want API_UNAUTHORIZED", platformerrors.CodeOf(err))
	}
	if session.IsLoggedIn(h.store) {
		t.Fatal("expected session flag cleared")
	}
	if got := h.navigator.visited(); len(got) != 1 || got[0] != "/login" {
		t.Fatalf("navigations = %v, want [/login]", got)
	}
	if got := h.notifier.all(); len(got) != 0 {
		t.Fatalf("auth failures must not notify, got %v", got)
	}
}

func TestRedirectElsewhereGoesThroughEnvelope(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/somewhere")
		w.WriteHeader(http.StatusFound)
	})

	_, err := h.client.ListClusters(context.Background())
	if platformerrors.CodeOf(err) != platformerrors.CodeAPIDecode {
		t.Fatalf("code = %s, want API_DECODE", platformerrors.CodeOf(err))
	}
	if !session.IsLoggedIn(h.store) {
		t.Fatal("non-login redirect must keep the session flag")
	}
}

func TestAuthStatusesClearSession(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			err := h.client.DeleteCluster(context.Background(), 3)
			if err == nil || err.Error() != "Authentication required" {
				t.Fatalf("error = %v, want Authentication required", err)
			}
			if platformerrors.CodeOf(err) != platformerrors.CodeAPIAuthRequired {
				t.Fatalf("code = %s, want API_AUTH_REQUIRED", platformerrors.CodeOf(err))
			}
			if platformerrors.HTTPStatus(err) != status {
				t.Fatalf("HTTPStatus() = %d, want %d", platformerrors.HTTPStatus(err), status)
			}
			if session.IsLoggedIn(h.store) {
				t.Fatal("expected session flag cleared")
			}
			if got := h.navigator.visited(); len(got) != 1 || got[0] != "/login" {
				t.Fatalf("navigations = %v, want [/login]", got)
			}
			if got := h.notifier.all(); len(got) != 0 {
				t.Fatalf("auth failures must not notify, got %v", got)
			}
		})
	}
}

func TestServerErrorNotifiesStatus(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := h.client.ListClusters(context.Background())
	if platformerrors.CodeOf(err) != platformerrors.CodeAPITransport {
		t.Fatalf("code = %s, want API_TRANSPORT", platformerrors.CodeOf(err))
	}
	want := "Request failed with status code 500"
	if got := h.notifier.all(); len(got) != 1 || got[0] != want {
		t.Fatalf("notifications = %v, want [%s]", got, want)
	}
	if !session.IsLoggedIn(h.store) {
		t.Fatal("server errors must keep the session flag")
	}
}

func TestNetworkFailureNotifiesDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	notifier := &recordingNotifier{}
	client, err := New(Options{BaseURL: baseURL, Notifier: notifier})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.ListClusters(context.Background())
	if platformerrors.CodeOf(err) != platformerrors.CodeAPITransport {
		t.Fatalf("code = %s, want API_TRANSPORT", platformerrors.CodeOf(err))
	}
	if got := notifier.all(); len(got) != 1 || got[0] != "Network Error" {
		t.Fatalf("notifications = %v, want [Network Error]", got)
	}
}

func TestTimeoutNotifiesTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	notifier := &recordingNotifier{}
	client, err := New(Options{BaseURL: server.URL, Notifier: notifier, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = client.ListClusters(context.Background())
	if platformerrors.CodeOf(err) != platformerrors.CodeAPITransport {
		t.Fatalf("code = %s, want API_TRANSPORT", platformerrors.CodeOf(err))
	}
	if got := notifier.all(); len(got) != 1 || got[0] != "timeout of 50ms exceeded" {
		t.Fatalf("notifications = %v, want [timeout of 50ms exceeded]", got)
	}
}

func TestRequestLogLine(t *testing.T) {
	t.Parallel()

	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"data":null}`)
	})

	err := h.client.CreateTopic(context.Background(), 1, CreateTopicRequest{Name: "orders", Partitions: 3, ReplicationFactor: 1})
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}
	line := h.logs.String()
	for _, want := range []string{
		"[API Request] POST ",
		"/api/clusters/1/topics",
		"params=",
		`data={"name":"orders","partitions":3,"replicationFactor":1}`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("log %q missing %q", line, want)
		}
	}
}

func TestCallerDeadlineIsNotReportedAsClientTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	notifier := &recordingNotifier{}
	client, err := New(Options{BaseURL: server.URL, Notifier: notifier})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.ListClusters(ctx)
	if platformerrors.CodeOf(err) != platformerrors.CodeAPITransport {
		t.Fatalf("code = %s, want API_TRANSPORT", platformerrors.CodeOf(err))
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want wrapped context.DeadlineExceeded", err)
	}
	if got := notifier.all(); len(got) != 1 || got[0] != "Network Error" {
		t.Fatalf("notifications = %v, want [Network Error]", got)
	}
}

func TestRequestLogFormatFailure(t *testing.T) {
	t.Parallel()

	var calls int
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, `{"code":200,"data":null}`)
	})

	err := h.client.call(context.Background(), http.MethodPost, "/clusters", nil, map[string]any{"bad": make(chan int)}, nil)
	if platformerrors.CodeOf(err) != platformerrors.CodeAPIInvalidArgument {
		t.Fatalf("code = %s, want API_INVALID_ARGUMENT", platformerrors.CodeOf(err))
	}
	if line := h.logs.String(); !strings.Contains(line, "[API Request] could not format log") {
		t.Fatalf("log = %q, want format failure line", line)
	}
	if calls != 0 {
		t.Fatalf("backend calls = %d, want 0", calls)
	}
}

func TestRequestLogIsQuietWithoutDebug(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"data":[]}`)
	}))
	t.Cleanup(server.Close)
	client, err := New(Options{BaseURL: server.URL, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.ListClusters(context.Background()); err != nil {
		t.Fatalf("ListClusters() error = %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("logs = %q, want empty", logs.String())
	}
}

func TestRequestCarriesIDAndCookies(t *testing.T) {
	t.Parallel()

	var gotID, gotCookie, gotFlag string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		if c, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = c.Value
		}
		if c, err := r.Cookie(session.LoggedInKey); err == nil {
			gotFlag = c.Value
		}
		writeJSON(w, http.StatusOK, `{"code":200,"data":[]}`)
	}))
	t.Cleanup(server.Close)

	client, err := New(Options{
		BaseURL: server.URL,
		Cookies: []*http.Cookie{
			{Name: "JSESSIONID", Value: "abc"},
			{Name: session.LoggedInKey, Value: "true"},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.ListClusters(context.Background()); err != nil {
		t.Fatalf("ListClusters() error = %v", err)
	}
	if gotID == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if gotCookie != "abc" {
		t.Fatalf("JSESSIONID = %q, want abc", gotCookie)
	}
	if gotFlag != "" {
		t.Fatal("the session flag cookie must not be forwarded to the backend")
	}
}
