package console

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
)

// newAPIProxy forwards /api/ calls to the backend origin with the browser's
// cookies. Auth failures expire the session flag cookie on the way back.
func newAPIProxy(backend string, transport http.RoundTripper, logger *log.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(backend)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			dropCookie(pr.Out, session.LoggedInKey)
		},
		Transport: transport,
		ModifyResponse: func(resp *http.Response) error {
			if isAuthFailure(resp) {
				resp.Header.Add("Set-Cookie", expiredFlagCookie(resp.Request).String())
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Printf("proxy %s %s: %v", r.Method, r.URL.Path, err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}, nil
}

// isAuthFailure mirrors the client's auth rows: 401, 403, or a 302 to the
// login route.
func isAuthFailure(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusFound:
		return strings.Contains(resp.Header.Get("Location"), routepath.Login)
	}
	return false
}

func expiredFlagCookie(outbound *http.Request) *http.Cookie {
	secure := false
	if outbound != nil {
		secure = strings.EqualFold(outbound.Header.Get("X-Forwarded-Proto"), "https")
	}
	return &http.Cookie{
		Name:     session.LoggedInKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// dropCookie removes one cookie from the request's Cookie header.
func dropCookie(req *http.Request, name string) {
	cookies := req.Cookies()
	req.Header.Del("Cookie")
	for _, cookie := range cookies {
		if cookie.Name != name {
			req.AddCookie(cookie)
		}
	}
}
