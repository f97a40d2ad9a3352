// Package repo contains all database access logic for the travel inquiry API.
// Only SQL and type mapping live here.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SubmissionRepo stores accepted submissions.
// It is write-only: the intake flow never reads, updates or deletes a record.
type SubmissionRepo interface {
	// Put inserts one submission keyed by its id.
	// Inserting an id that already exists is an error.
	Put(ctx context.Context, s domain.Submission) error
}

// pgSubmissionRepo is the Postgres implementation of SubmissionRepo.
type pgSubmissionRepo struct {
	db db
}

// NewSubmissionRepo constructs a SubmissionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSubmissionRepo(db db) SubmissionRepo {
	return &pgSubmissionRepo{db: db}
}

// Put inserts a single submissions row. Nil optional fields become NULL.
func (r *pgSubmissionRepo) Put(ctx context.Context, s domain.Submission) error {
	const q = `
		INSERT INTO submissions (
			id, name, email, phone, destination,
			travel_date_start, travel_date_end, travelers, message, submitted_at
		) VALUES (
			@id, @name, @email, @phone, @destination,
			@travel_date_start, @travel_date_end, @travelers, @message, @submitted_at
		)`

	args := pgx.NamedArgs{
		"id":                s.ID,
		"name":              s.Name,
		"email":             s.Email,
		"phone":             s.Phone,
		"destination":       s.Destination,
		"travel_date_start": s.TravelDateStart,
		"travel_date_end":   s.TravelDateEnd,
		"travelers":         s.Travelers,
		"message":           s.Message,
		"submitted_at":      s.SubmittedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.SubmissionRepo.Put: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("repo.SubmissionRepo.Put: expected 1 row inserted, got %d", tag.RowsAffected())
	}
	return nil
}
