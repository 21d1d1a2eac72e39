// Package invoice embeds the schema of the invoice context.
package invoice

import "embed"

// Table is the goose version table of this context.
const Table = "goose_invoice_version"

//go:embed *.sql
var FS embed.FS
