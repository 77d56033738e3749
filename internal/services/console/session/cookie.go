package session

import (
	"net/http"
	"strings"
	"sync"
)

// CookieStore is a per-request Store backed by browser session cookies.
// Reads see the request's cookies and any writes made during the request.
// Cookies carry no Max-Age so they end with the browser session.
type CookieStore struct {
	w http.ResponseWriter
	r *http.Request

	mu      sync.Mutex
	written map[string]*string
}

// NewCookieStore binds a CookieStore to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r, written: map[string]*string{}}
}

// Get returns the cookie value for key.
func (s *CookieStore) Get(key string) (string, bool) {
	s.mu.Lock()
	if value, ok := s.written[key]; ok {
		s.mu.Unlock()
		if value == nil {
			return "", false
		}
		return *value, true
	}
	s.mu.Unlock()

	if s.r == nil {
		return "", false
	}
	cookie, err := s.r.Cookie(key)
	if err != nil || cookie == nil {
		return "", false
	}
	return cookie.Value, true
}

// Set writes a session cookie.
func (s *CookieStore) Set(key, value string) error {
	s.mu.Lock()
	s.written[key] = &value
	s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Secure:   isHTTPS(s.r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Remove expires the cookie.
func (s *CookieStore) Remove(key string) error {
	s.mu.Lock()
	s.written[key] = nil
	s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Secure:   isHTTPS(s.r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return nil
}

// IsLoggedInRequest reports whether r carries the session flag cookie.
func IsLoggedInRequest(r *http.Request) bool {
	return IsLoggedIn(NewCookieStore(nil, r))
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
