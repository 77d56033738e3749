// Package console hosts the browser-facing kafkaview console: the login
// pages, the guarded dashboard and a same-origin proxy to the backend API.
package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/louisbranch/kafkaview/internal/platform/timeouts"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/httpx"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/router"
)

// Config defines startup inputs for the console service.
type Config struct {
	HTTPAddr   string
	BackendURL string
	// APITimeout bounds each backend call made while rendering a page.
	APITimeout time.Duration
	// Locale is used when a request carries no Accept-Language header.
	Locale string
	// Debug enables the API client request log.
	Debug bool
	// HTTPClient supplies the transport shared by page calls and the proxy.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Server hosts the console HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the console root handler.
func NewHandler(cfg Config) (http.Handler, error) {
	probe, err := api.New(api.Options{BaseURL: cfg.BackendURL})
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = i18n.Chinese
	}

	h := &handlers{
		backendURL:    probe.Origin(),
		httpClient:    httpClient,
		timeout:       cfg.APITimeout,
		debug:         cfg.Debug,
		defaultLocale: i18n.NormalizeLocale(locale),
		logger:        logger,
	}
	proxy, err := newAPIProxy(probe.Origin(), httpClient.Transport, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Health, h.health)
	mux.HandleFunc("GET "+routepath.Login, h.loginPage)
	mux.HandleFunc("POST "+routepath.Login, h.login)
	mux.Handle(routepath.Logout, httpx.RequireMethod(http.MethodGet, http.MethodPost)(http.HandlerFunc(h.logout)))
	mux.Handle(routepath.APIPrefixSlash, proxy)
	mux.Handle("GET /{$}", router.RequireSession(http.HandlerFunc(h.home)))
	mux.Handle("GET "+routepath.ClustersPrefix+"{id}", router.RequireSession(http.HandlerFunc(h.cluster)))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(logger),
		router.RequireSameOrigin,
	), nil
}

// NewServer validates config and constructs a console server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose console handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("console server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown console http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve console http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
