// Package migrator applies the embedded goose migrations of each bounded context.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Set is the migration history of one bounded context. Every context keeps its
// own goose version table so contexts can evolve independently.
type Set struct {
	Name  string
	Table string
	Files fs.FS
}

// Run applies every pending migration of sets, in order, against dbURL.
func Run(ctx context.Context, dbURL string, sets ...Set) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	for _, set := range sets {
		goose.SetBaseFS(set.Files)
		goose.SetTableName(set.Table)
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("failed to up %s migrations: %w", set.Name, err)
		}
	}
	return nil
}
