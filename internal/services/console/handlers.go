package console

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/httpx"
	"github.com/louisbranch/kafkaview/internal/services/console/notify"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/router"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
	"github.com/louisbranch/kafkaview/internal/services/console/templates"
)

type handlers struct {
	backendURL    string
	httpClient    *http.Client
	timeout       time.Duration
	debug         bool
	defaultLocale string
	logger        *log.Logger
}

// requestScope is the per-request API client with its session, navigation
// and notification sinks bound to the browser request.
type requestScope struct {
	client *api.Client
	store  *session.CookieStore
	nav    *router.Router
	flash  *notify.Flash
	loc    *i18n.Labeler
}

func (h *handlers) scope(w http.ResponseWriter, r *http.Request) (*requestScope, error) {
	store := session.NewCookieStore(w, r)
	nav := router.New(store)
	flash := &notify.Flash{}
	loc := h.labeler(r)
	client, err := api.New(api.Options{
		BaseURL:    h.backendURL,
		Timeout:    h.timeout,
		HTTPClient: h.httpClient,
		Session:    store,
		Navigator:  nav,
		Notifier:   flash,
		Logger:     h.logger,
		Cookies:    r.Cookies(),
		Debug:      h.debug,
		Locale:     loc.Locale(),
	})
	if err != nil {
		return nil, err
	}
	return &requestScope{client: client, store: store, nav: nav, flash: flash, loc: loc}, nil
}

func (h *handlers) labeler(r *http.Request) *i18n.Labeler {
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return i18n.NewLabeler(accept)
	}
	return i18n.NewLabeler(h.defaultLocale)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	loc := h.labeler(r)
	h.render(w, r, http.StatusOK, loc, loc.Message("console.login.title"), nil, false,
		templates.LoginPage(loc, templates.LoginView{}))
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	sc, err := h.scope(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cookies, err := sc.client.Login(httpx.RequestContext(r), username, password)
	if err != nil {
		message := err.Error()
		if platformerrors.CodeOf(err).IsAuthFailure() {
			message = sc.loc.Message("console.login.failed")
		}
		h.render(w, r, platformerrors.CodeOf(err).HTTPStatus(), sc.loc, sc.loc.Message("console.login.title"), nil, false,
			templates.LoginPage(sc.loc, templates.LoginView{Username: username, Error: message}))
		return
	}
	for _, cookie := range cookies {
		forwarded := *cookie
		forwarded.Domain = ""
		http.SetCookie(w, &forwarded)
	}
	http.Redirect(w, r, routepath.Root, http.StatusFound)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	sc, err := h.scope(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := sc.client.Logout(httpx.RequestContext(r)); err != nil {
		h.logger.Printf("logout: %v", err)
	}
	http.Redirect(w, r, routepath.Login, http.StatusFound)
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	sc, err := h.scope(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	clusters, err := sc.client.ListClusters(httpx.RequestContext(r))
	if h.redirectOnAuthFailure(w, r, sc, err) {
		return
	}
	status := http.StatusOK
	if err != nil {
		status = platformerrors.CodeOf(err).HTTPStatus()
	}
	h.render(w, r, status, sc.loc, sc.loc.Message("console.clusters.title"), sc.flash.Messages(), true,
		templates.ClustersPage(sc.loc, clusters))
}

func (h *handlers) cluster(w http.ResponseWriter, r *http.Request) {
	sc, err := h.scope(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.render(w, r, http.StatusNotFound, sc.loc, sc.loc.Message("console.cluster.title"), nil, true,
			templates.ErrorPage(sc.loc.Message("console.cluster.invalid")))
		return
	}
	metrics, err := sc.client.ClusterMetrics(httpx.RequestContext(r), id)
	if h.redirectOnAuthFailure(w, r, sc, err) {
		return
	}
	if err != nil {
		h.render(w, r, platformerrors.CodeOf(err).HTTPStatus(), sc.loc, sc.loc.Message("console.cluster.title"), sc.flash.Messages(), true, nil)
		return
	}
	h.render(w, r, http.StatusOK, sc.loc, sc.loc.Message("console.cluster.title"), sc.flash.Messages(), true,
		templates.ClusterPage(sc.loc, templates.ClusterView{ID: id, Metrics: metrics}))
}

// redirectOnAuthFailure sends the browser wherever the client navigated
// after an auth failure. The flag cookie is already expired by then.
func (h *handlers) redirectOnAuthFailure(w http.ResponseWriter, r *http.Request, sc *requestScope, err error) bool {
	if err == nil || !platformerrors.CodeOf(err).IsAuthFailure() {
		return false
	}
	http.Redirect(w, r, sc.nav.Current(), http.StatusFound)
	return true
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, loc *i18n.Labeler, title string, flashes []string, loggedIn bool, body templ.Component) {
	page := templates.Layout(loc, title, flashes, loggedIn, body)
	if err := httpx.WritePage(w, r, status, page); err != nil {
		h.fail(w, r, err)
	}
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Printf("console %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
