// Package migrations embeds the goose migrations for the submissions store.
// cmd/api applies them at startup when RUN_MIGRATIONS is true; the
// integration tests apply them through testutil.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS holds every *.sql migration.
//
//go:embed *.sql
var FS embed.FS

// NewProvider returns a Postgres goose provider over FS.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("migrations.NewProvider: %w", err)
	}
	return p, nil
}
