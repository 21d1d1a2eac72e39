// Package account embeds the schema of the account context.
package account

import "embed"

// Table is the goose version table of this context.
const Table = "goose_account_version"

//go:embed *.sql
var FS embed.FS
