// Package api is the kafkaview backend API client.
//
// Every call goes through the same interceptor pair: a request logger and a
// response decision table that unwraps the {code, data, message} envelope,
// clears the session flag and navigates to the login route on
// authentication failures, and notifies the user of every other failure.
package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	errori18n "github.com/louisbranch/kafkaview/internal/platform/errors/i18n"
	i18ncatalog "github.com/louisbranch/kafkaview/internal/platform/i18n/catalog"
	"github.com/louisbranch/kafkaview/internal/platform/timeouts"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/kafkaview/internal/services/console/api"

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(path string)
}

// Notifier shows a transient error message to the user.
type Notifier interface {
	Error(message string)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend origin, for example http://localhost:8080.
	BaseURL string
	// APIPrefix is joined to BaseURL for envelope calls. Defaults to /api.
	APIPrefix string
	// Timeout bounds each call. Defaults to 30s.
	Timeout time.Duration
	// HTTPClient is copied; its redirect policy is always replaced.
	HTTPClient *http.Client
	Session    session.Store
	Navigator  Navigator
	Notifier   Notifier
	Logger     *log.Logger
	// Cookies are attached to every request.
	Cookies []*http.Cookie
	Jar     http.CookieJar
	// Debug enables the request log.
	Debug bool
	// Locale selects default error messages. Defaults to en-US.
	Locale string
}

// Client calls the kafkaview backend.
type Client struct {
	origin    *url.URL
	apiBase   string
	http      *http.Client
	session   session.Store
	navigator Navigator
	notifier  Notifier
	logger    *log.Logger
	cookies   []*http.Cookie
	debug     bool
	messages  *errori18n.Catalog
	tracer    trace.Tracer
}

// New validates options and builds a Client.
func New(opts Options) (*Client, error) {
	origin, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", opts.BaseURL)
	}
	if origin.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", opts.BaseURL)
	}
	origin.Path = strings.TrimRight(origin.Path, "/")
	origin.RawQuery = ""
	origin.Fragment = ""

	prefix := strings.TrimSpace(opts.APIPrefix)
	if prefix == "" {
		prefix = routepath.APIPrefix
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}

	httpClient := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		httpClient = &copied
	}
	// Redirects are never followed; 3xx responses reach the interceptor.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}
	if opts.Jar != nil {
		httpClient.Jar = opts.Jar
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = i18ncatalog.BaseLocale
	}

	return &Client{
		origin:    origin,
		apiBase:   joinURL(origin.String(), prefix),
		http:      httpClient,
		session:   opts.Session,
		navigator: opts.Navigator,
		notifier:  opts.Notifier,
		logger:    logger,
		cookies:   opts.Cookies,
		debug:     opts.Debug,
		messages:  errori18n.GetCatalog(locale),
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Origin returns the backend origin the client talks to.
func (c *Client) Origin() string {
	return c.origin.String()
}

// joinURL joins base and path with exactly one slash.
func joinURL(base, path string) string {
	switch {
	case path == "":
		return base
	case strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/"):
		return base + path[1:]
	case strings.HasSuffix(base, "/") || strings.HasPrefix(path, "/"):
		return base + path
	default:
		return base + "/" + path
	}
}

func (c *Client) originURL(path string) string {
	return joinURL(c.origin.String(), path)
}

func (c *Client) notify(message string) {
	if c.notifier != nil {
		c.notifier.Error(message)
	}
}

func (c *Client) navigate(path string) {
	if c.navigator != nil {
		c.navigator.Navigate(path)
	}
}

func (c *Client) clearSession() {
	if err := session.Clear(c.session); err != nil {
		c.logger.Printf("clear session flag: %v", err)
	}
}

func (c *Client) attachCookies(req *http.Request) {
	for _, cookie := range c.cookies {
		if cookie == nil || cookie.Name == session.LoggedInKey {
			continue
		}
		req.AddCookie(cookie)
	}
}

func drain(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<16))
	_ = body.Close()
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
