// Package timeouts defines shared timeout constants used across kafkaview
// commands.
package timeouts

import "time"

// APIRequest caps a single backend API call, matching the console's
// 30 second client timeout.
const APIRequest = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Telemetry limits how long trace exporters may flush on exit.
const Telemetry = 5 * time.Second
