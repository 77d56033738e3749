// Package main starts the kafkaview web console.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	consolecmd "github.com/louisbranch/kafkaview/internal/cmd/console"
	"github.com/louisbranch/kafkaview/internal/platform/config"
)

func main() {
	if _, err := config.LoadDotEnv("", 0); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := consolecmd.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CONSOLE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consolecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
