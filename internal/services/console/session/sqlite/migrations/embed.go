package migrations

import "embed"

// FS contains embedded SQLite migrations for console session state.
//
//go:embed *.sql
var FS embed.FS
