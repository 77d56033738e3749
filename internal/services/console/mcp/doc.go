// Package mcp exposes read-only console operations as MCP tools.
//
// Every tool calls the shared api.Client, so backend failures come back as
// tool errors carrying the same messages the console and CLI show. The
// client is built with notify.Discard because there is no user-facing
// surface to toast on; a cleared session surfaces as an auth error telling
// the caller to log in with the CLI.
package mcp
