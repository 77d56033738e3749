package session

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// CookieSink persists backend cookies between processes.
type CookieSink interface {
	LoadCookies(ctx context.Context) ([]*http.Cookie, error)
	SaveCookies(ctx context.Context, cookies []*http.Cookie) error
}

// Jar is an http.CookieJar for the backend origin. Cookies the backend sets
// are mirrored into the sink so the next process starts with them.
type Jar struct {
	origin *url.URL
	jar    *cookiejar.Jar
	sink   CookieSink
	logger *log.Logger
}

// NewJar builds a Jar for origin and seeds it from sink when one is given.
func NewJar(ctx context.Context, origin string, sink CookieSink) (*Jar, error) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse backend origin: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend origin %q must be absolute", origin)
	}
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	j := &Jar{origin: parsed, jar: inner, sink: sink, logger: log.Default()}
	if sink != nil {
		cookies, err := sink.LoadCookies(ctx)
		if err != nil {
			return nil, fmt.Errorf("load backend cookies: %w", err)
		}
		if len(cookies) > 0 {
			inner.SetCookies(parsed, cookies)
		}
	}
	return j, nil
}

// SetCookies stores cookies and mirrors the backend origin's cookies to the sink.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)
	if j.sink == nil || len(cookies) == 0 || u == nil || u.Host != j.origin.Host {
		return
	}
	if err := j.sink.SaveCookies(context.Background(), cookies); err != nil {
		j.logger.Printf("persist backend cookies: %v", err)
	}
}

// Cookies returns the cookies to send to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
