// Package testutil provides the database fixtures for the submissions store
// integration tests. Every helper skips the calling test when
// TEST_DATABASE_URL is unset, so `go test ./...` needs no Postgres.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver for goose

	"github.com/pkordes/travel-inquiry/backend/migrations"
)

// dsnEnv names the variable holding the integration database URL.
const dsnEnv = "TEST_DATABASE_URL"

// Migrate applies every pending migration to db and returns how many ran.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	provider, err := migrations.NewProvider(db)
	if err != nil {
		return 0, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("testutil.Migrate: %w", err)
	}
	return len(results), nil
}

// MigrateFromEnv brings the TEST_DATABASE_URL database up to the current
// submissions schema. It is meant for TestMain, which has no *testing.T:
// it does nothing when the variable is unset and returns an error otherwise.
func MigrateFromEnv(ctx context.Context) error {
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		return nil
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("testutil.MigrateFromEnv: open: %w", err)
	}
	defer db.Close()

	_, err = Migrate(ctx, db)
	return err
}

// NewPool returns a pgx pool on the integration database, closed when the
// test ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSubmissionsTx returns a transaction on the integration database in
// which the submissions table is available. Everything written through it is
// rolled back when the test ends, so tests never see each other's rows.
func NewSubmissionsTx(t *testing.T) pgx.Tx {
	t.Helper()
	ctx := context.Background()

	tx, err := NewPool(t).Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewSubmissionsTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	var present bool
	if err := tx.QueryRow(ctx, `SELECT to_regclass('public.submissions') IS NOT NULL`).Scan(&present); err != nil {
		t.Fatalf("testutil.NewSubmissionsTx: check schema: %v", err)
	}
	if !present {
		t.Fatalf("testutil.NewSubmissionsTx: submissions table missing; call MigrateFromEnv in TestMain")
	}
	return tx
}

// NewSQLDB returns a database/sql handle on the integration database for
// driving goose directly, closed when the test ends.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip(dsnEnv + " not set; skipping integration test")
	}
	return dsn
}
