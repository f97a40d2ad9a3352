package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// RecordBuilder turns a validated SubmissionInput into a domain.Submission.
// The zero value is ready to use; Now and NewID may be replaced in tests.
type RecordBuilder struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// NewID returns a fresh identifier. Defaults to uuid.New (random v4).
	NewID func() uuid.UUID
}

// Build assigns an id and timestamp and normalizes optional fields.
// Every field is copied verbatim; empty optional fields become nil.
func (b RecordBuilder) Build(in domain.SubmissionInput) domain.Submission {
	now, newID := b.Now, b.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.New
	}

	return domain.Submission{
		ID:              newID(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           optional(in.Phone),
		Destination:     optional(in.Destination),
		TravelDateStart: optional(in.TravelDateStart),
		TravelDateEnd:   optional(in.TravelDateEnd),
		Travelers:       optional(in.Travelers),
		Message:         optional(in.Message),
		// Truncate to the precision of the textual timestamp so the stored
		// value and the one returned to the caller agree.
		SubmittedAt: now().UTC().Truncate(time.Millisecond),
	}
}

// optional returns nil for an empty string and a pointer to s otherwise.
// Whitespace is content, not absence.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
