// Package kafkaview builds the kafkaview command-line client.
package kafkaview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/kafkaview/internal/platform/config"
	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/spf13/cobra"
)

// Config holds the environment defaults of the command-line client. Flags
// override every field.
type Config struct {
	BackendURL string        `env:"KAFKAVIEW_BACKEND_URL" envDefault:"http://localhost:8080"`
	Locale     string        `env:"KAFKAVIEW_LOCALE"      envDefault:"zh"`
	StatePath  string        `env:"KAFKAVIEW_STATE_PATH"  envDefault:"~/.kafkaview/state.db"`
	APITimeout time.Duration `env:"KAFKAVIEW_API_TIMEOUT" envDefault:"30s"`
	Debug      bool          `env:"KAFKAVIEW_DEBUG"`
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// IO carries the streams a command reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type options struct {
	server  string
	locale  string
	state   string
	timeout time.Duration
	noColor bool
	debug   bool
	streams IO
}

// NewRootCommand builds the kafkaview command tree over cfg defaults.
func NewRootCommand(cfg Config, streams IO) *cobra.Command {
	opts := &options{
		server:  cfg.BackendURL,
		locale:  cfg.Locale,
		state:   cfg.StatePath,
		timeout: cfg.APITimeout,
		debug:   cfg.Debug,
		streams: streams,
	}

	root := &cobra.Command{
		Use:           "kafkaview",
		Short:         "Kafka console client",
		Long:          "Command-line client for the kafkaview backend: clusters, topics, messages and consumer groups.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			i18n.SetLocale(opts.locale)
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", opts.server, "backend origin")
	flags.StringVar(&opts.locale, "locale", opts.locale, "display locale: zh or en")
	flags.StringVar(&opts.state, "state", opts.state, "session state database")
	flags.DurationVar(&opts.timeout, "timeout", opts.timeout, "timeout for each backend call")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored notifications")
	flags.BoolVar(&opts.debug, "debug", opts.debug, "log every backend API request")

	root.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newClustersCmd(opts),
		newTopicsCmd(opts),
		newMessagesCmd(opts),
		newGroupsCmd(opts),
		newLabelsCmd(opts),
	)
	return root
}

// Execute parses environment and args, runs the command and returns the
// process exit code.
func Execute(ctx context.Context, args []string, streams IO, lookup EnvLookup) int {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg, lookup); err != nil {
		fmt.Fprintf(streams.Err, "%v\n", err)
		return 2
	}
	root := NewRootCommand(cfg, streams)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
	}
	return 1
}
