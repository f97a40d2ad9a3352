// Package handler implements the HTTP handlers for the travel inquiry API.
// All handlers are methods on Server. Methods are split into files by
// endpoint (health.go, submission.go, frontend.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// SubmissionServicer defines the business operation the submission handler
// depends on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or mail.
type SubmissionServicer interface {
	Submit(ctx context.Context, in domain.SubmissionInput) (domain.Submission, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	submissions SubmissionServicer
	apiEndpoint string
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// apiEndpoint is the URL the browser form should post to; it is published
// through GET /config.js.
func NewServer(submissions SubmissionServicer, apiEndpoint string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{submissions: submissions, apiEndpoint: apiEndpoint, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, "", nil)
}
