// Package main runs the kafkaview command-line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kafkaviewcmd "github.com/louisbranch/kafkaview/internal/cmd/kafkaview"
	"github.com/louisbranch/kafkaview/internal/platform/cmd"
	"github.com/louisbranch/kafkaview/internal/platform/config"
)

func main() {
	if _, err := config.LoadDotEnv("", 0); err != nil {
		config.Exitf("load .env: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	err := cmd.RunWithTelemetry(ctx, cmd.ServiceKafkaview, func(ctx context.Context) error {
		code = kafkaviewcmd.Execute(ctx, os.Args[1:], kafkaviewcmd.IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, os.LookupEnv)
		return nil
	})
	stop()
	config.ExitOnError(err)
	os.Exit(code)
}
