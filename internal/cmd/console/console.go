// Package console parses console command flags and runs the web console.
package console

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/kafkaview/internal/platform/cmd"
	"github.com/louisbranch/kafkaview/internal/platform/config"
	"github.com/louisbranch/kafkaview/internal/services/console"
)

// Config holds the console command configuration.
type Config struct {
	HTTPAddr   string        `env:"KAFKAVIEW_CONSOLE_HTTP_ADDR" envDefault:"localhost:5173"`
	BackendURL string        `env:"KAFKAVIEW_BACKEND_URL"       envDefault:"http://localhost:8080"`
	APITimeout time.Duration `env:"KAFKAVIEW_API_TIMEOUT"       envDefault:"30s"`
	Locale     string        `env:"KAFKAVIEW_LOCALE"            envDefault:"zh"`
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

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "kafkaview backend origin")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "timeout for each backend call")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "fallback locale when the browser sends none (zh or en)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every backend API request")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web console.
func Run(ctx context.Context, cfg Config) error {
	return cmd.RunWithTelemetry(ctx, cmd.ServiceConsole, func(ctx context.Context) error {
		server, err := console.NewServer(ctx, console.Config{
			HTTPAddr:   cfg.HTTPAddr,
			BackendURL: cfg.BackendURL,
			APITimeout: cfg.APITimeout,
			Locale:     cfg.Locale,
			Debug:      cfg.Debug,
			Logger:     log.Default(),
		})
		if err != nil {
			return fmt.Errorf("init console server: %w", err)
		}
		defer server.Close()

		log.Printf("console listening on %s, backend %s", server.Addr(), cfg.BackendURL)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve console: %w", err)
		}
		return nil
	})
}
