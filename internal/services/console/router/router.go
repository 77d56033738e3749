// Package router holds the console's route table and session guard.
package router

import (
	"net/url"
	"strings"
	"sync"

	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
)

// Route is one entry of the route table.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
	// Prefix matches every path under Path instead of Path alone.
	Prefix bool
}

// Routes is the console route table.
var Routes = []Route{
	{Path: routepath.Login, Name: "Login"},
	{Path: routepath.Root, Name: "Home", RequiresAuth: true},
	{Path: routepath.ClustersPrefix, Name: "Cluster", RequiresAuth: true, Prefix: true},
}

// Match returns the route for path, ignoring any query or fragment.
func Match(path string) (Route, bool) {
	clean := path
	if parsed, err := url.Parse(path); err == nil {
		clean = parsed.Path
	}
	if clean == "" {
		clean = routepath.Root
	}
	for _, route := range Routes {
		if route.Prefix && strings.HasPrefix(clean, route.Path) && len(clean) > len(route.Path) {
			return route, true
		}
		if !route.Prefix && clean == route.Path {
			return route, true
		}
	}
	return Route{}, false
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard admits navigation to path unless a matched route requires auth and
// the session flag is not exactly "true". Unmatched paths are admitted.
func Guard(path string, store session.Store) Decision {
	route, ok := Match(path)
	if !ok || !route.RequiresAuth || session.IsLoggedIn(store) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: routepath.Login}
}

// Router tracks the current location and resolves navigation through Guard.
// It satisfies the API client's Navigator.
type Router struct {
	mu      sync.Mutex
	store   session.Store
	current string

	// OnNavigate runs after every resolved navigation with the requested
	// and the final path.
	OnNavigate func(requested, final string)
}

// New returns a Router positioned at the root route.
func New(store session.Store) *Router {
	return &Router{store: store, current: routepath.Root}
}

// Navigate moves to path, or to the guard's redirect.
func (r *Router) Navigate(path string) {
	final := path
	if decision := Guard(path, r.store); !decision.Allowed {
		final = decision.Redirect
	}
	r.mu.Lock()
	r.current = final
	hook := r.OnNavigate
	r.mu.Unlock()
	if hook != nil {
		hook(path, final)
	}
}

// Current returns the current location.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
