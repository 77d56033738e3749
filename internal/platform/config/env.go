// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithLookup loads configuration from lookup instead of the process
// environment. A nil lookup falls back to ParseEnv.
func ParseEnvWithLookup(target any, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return ParseEnv(target)
	}
	environment := map[string]string{}
	for _, key := range envKeys {
		if value, ok := lookup(key); ok {
			environment[key] = value
		}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Environment keys shared by every kafkaview command.
const (
	EnvBackendURL      = "KAFKAVIEW_BACKEND_URL"
	EnvConsoleHTTPAddr = "KAFKAVIEW_CONSOLE_HTTP_ADDR"
	EnvAPITimeout      = "KAFKAVIEW_API_TIMEOUT"
	EnvLocale          = "KAFKAVIEW_LOCALE"
	EnvStatePath       = "KAFKAVIEW_STATE_PATH"
	EnvDebug           = "KAFKAVIEW_DEBUG"
	EnvOTelEndpoint    = "KAFKAVIEW_OTEL_ENDPOINT"
	EnvOTelEnabled     = "KAFKAVIEW_OTEL_ENABLED"
	EnvOTelSampleRatio = "KAFKAVIEW_OTEL_SAMPLE_RATIO"
	EnvMCPTransport    = "KAFKAVIEW_MCP_TRANSPORT"
)

var envKeys = []string{
	EnvBackendURL,
	EnvConsoleHTTPAddr,
	EnvAPITimeout,
	EnvLocale,
	EnvStatePath,
	EnvDebug,
	EnvOTelEndpoint,
	EnvOTelEnabled,
	EnvOTelSampleRatio,
	EnvMCPTransport,
}
