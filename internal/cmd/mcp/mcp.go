// Package mcp parses MCP command flags and serves console tools on stdio.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/kafkaview/internal/platform/cmd"
	"github.com/louisbranch/kafkaview/internal/platform/config"
	consolemcp "github.com/louisbranch/kafkaview/internal/services/console/mcp"
)

// Config holds MCP command configuration.
type Config struct {
	BackendURL string        `env:"KAFKAVIEW_BACKEND_URL"   envDefault:"http://localhost:8080"`
	StatePath  string        `env:"KAFKAVIEW_STATE_PATH"    envDefault:"~/.kafkaview/state.db"`
	APITimeout time.Duration `env:"KAFKAVIEW_API_TIMEOUT"   envDefault:"30s"`
	Transport  string        `env:"KAFKAVIEW_MCP_TRANSPORT" envDefault:"stdio"`
	Debug      bool          `env:"KAFKAVIEW_DEBUG"`
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, lookup); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "kafkaview backend origin")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "session state shared with the CLI")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for each backend call")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every backend API request to stderr")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	statePath, err := config.ExpandHome(cfg.StatePath)
	if err != nil {
		return Config{}, err
	}
	cfg.StatePath = statePath
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return cmd.RunWithTelemetry(ctx, cmd.ServiceMCP, func(ctx context.Context) error {
		return consolemcp.Run(ctx, consolemcp.Config{
			BackendURL: cfg.BackendURL,
			StatePath:  cfg.StatePath,
			APITimeout: cfg.APITimeout,
			Debug:      cfg.Debug,
			Logger:     log.Default(),
		}, cfg.Transport)
	})
}
