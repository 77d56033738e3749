// Package cmd holds the shared entrypoint helpers for kafkaview commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/samber/lo"

	"github.com/louisbranch/kafkaview/internal/platform/otel"
	"github.com/louisbranch/kafkaview/internal/platform/timeouts"
)

// Service identifiers, used as the trace service suffix and log prefix.
const (
	ServiceConsole   = "console"
	ServiceKafkaview = "kafkaview"
	ServiceMCP       = "mcp"
)

var services = []string{ServiceConsole, ServiceKafkaview, ServiceMCP}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs tracing for service, runs it and flushes traces
// on the way out. A run that ends because ctx was cancelled, the usual
// signal shutdown, is not an error.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if !lo.Contains(services, service) {
		return fmt.Errorf("unknown service %q", service)
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("%s telemetry: %w", service, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Telemetry)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()

	err = run(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
