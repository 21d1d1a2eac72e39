// Package order embeds the schema of the order context.
package order

import "embed"

// Table is the goose version table of this context.
const Table = "goose_order_version"

//go:embed *.sql
var FS embed.FS
