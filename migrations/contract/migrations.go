// Package contract embeds the schema of the contract context.
package contract

import "embed"

// Table is the goose version table of this context.
const Table = "goose_contract_version"

//go:embed *.sql
var FS embed.FS
