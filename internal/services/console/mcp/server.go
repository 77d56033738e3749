package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/kafkaview/internal/platform/i18n/catalog"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/notify"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
	"github.com/louisbranch/kafkaview/internal/services/console/session/sqlite"
)

const (
	serverName    = "kafkaview-mcp"
	serverVersion = "0.1.0"
)

// Config configures the MCP adapter. StatePath points at the CLI state so a
// session opened with "kafkaview login" is reused.
type Config struct {
	BackendURL string
	StatePath  string
	APITimeout time.Duration
	Debug      bool
	Logger     *log.Logger
}

// Server binds console tools to an MCP server.
type Server struct {
	mcpServer *sdkmcp.Server
	store     *sqlite.Store
}

// New opens the shared session state and builds the backend client.
func New(ctx context.Context, cfg Config) (*Server, error) {
	store, err := sqlite.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open session state: %w", err)
	}
	jar, err := session.NewJar(ctx, cfg.BackendURL, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	client, err := api.New(api.Options{
		BaseURL:  cfg.BackendURL,
		Timeout:  cfg.APITimeout,
		Session:  store,
		Notifier: notify.Discard,
		Logger:   cfg.Logger,
		Jar:      jar,
		Debug:    cfg.Debug,
		Locale:   catalog.BaseLocale,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	server := NewServer(client, store)
	server.store = store
	return server, nil
}

// NewServer registers every tool against backend. A nil store skips the
// session check.
func NewServer(backend Backend, store session.Store) *Server {
	mcpServer := sdkmcp.NewServer(&sdkmcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	addTool(mcpServer, store, ClusterListTool(), ClusterListHandler(backend))
	addTool(mcpServer, store, TopicListTool(), TopicListHandler(backend))
	addTool(mcpServer, store, TopicConfigsTool(), TopicConfigsHandler(backend))
	addTool(mcpServer, store, ConsumerGroupListTool(), ConsumerGroupListHandler(backend))
	addTool(mcpServer, store, TopicVolumeTool(), TopicVolumeHandler(backend))
	mcpServer.AddResource(ClusterListResource(), requireSessionResource(store, ClusterListResourceHandler(backend)))

	return &Server{mcpServer: mcpServer}
}

func addTool[I, O any](server *sdkmcp.Server, store session.Store, tool *sdkmcp.Tool, handler sdkmcp.ToolHandlerFor[I, O]) {
	sdkmcp.AddTool(server, tool, requireSession(store, handler))
}

// requireSession refuses tool calls while the login flag is absent, the
// same check the console router applies to protected routes.
func requireSession[I, O any](store session.Store, next sdkmcp.ToolHandlerFor[I, O]) sdkmcp.ToolHandlerFor[I, O] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input I) (*sdkmcp.CallToolResult, O, error) {
		if store != nil && !session.IsLoggedIn(store) {
			var zero O
			return nil, zero, errNotLoggedIn
		}
		return next(ctx, req, input)
	}
}

// requireSessionResource applies the same check to resource reads.
func requireSessionResource(store session.Store, next sdkmcp.ResourceHandler) sdkmcp.ResourceHandler {
	return func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		if store != nil && !session.IsLoggedIn(store) {
			return nil, errNotLoggedIn
		}
		return next(ctx, req)
	}
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &sdkmcp.StdioTransport{})
}

// Close releases the session state.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

func (s *Server) serveWithTransport(ctx context.Context, transport sdkmcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if closeErr := s.Close(); closeErr != nil {
		if err == nil {
			return fmt.Errorf("close session state: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close session state: %w", err, closeErr)
	}
	return err
}

// Run builds a server from cfg and serves the named transport.
func Run(ctx context.Context, cfg Config, transport string) error {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "", "stdio":
	default:
		return fmt.Errorf("transport %q is not supported", transport)
	}
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
