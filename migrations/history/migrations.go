// Package history embeds the schema of the history context.
package history

import "embed"

// Table is the goose version table of this context.
const Table = "goose_history_version"

//go:embed *.sql
var FS embed.FS
