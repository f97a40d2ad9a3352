// Package domain contains the core data types for the travel inquiry API.
// It is imported by every other internal package (repo, service, notify,
// handler) and depends only on uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the textual form of Submission.SubmittedAt: ISO-8601 with
// millisecond precision, always rendered in UTC ("Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SubmissionInput is the untrusted request body as posted by the inquiry form.
// Only Name and Email are required; every other field is free-form text.
type SubmissionInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Destination     string `json:"destination"`
	TravelDateStart string `json:"travelDateStart"`
	TravelDateEnd   string `json:"travelDateEnd"`
	Travelers       string `json:"travelers"`
	Message         string `json:"message"`
}

// Submission is the normalized, persisted record of one accepted inquiry.
// Optional fields are nil when the caller did not provide them; nil is stored
// as NULL and rendered as absent in notifications.
// A Submission is written once and never updated.
type Submission struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           *string
	Destination     *string
	TravelDateStart *string
	TravelDateEnd   *string
	Travelers       *string
	Message         *string
	SubmittedAt     time.Time
}

// Timestamp returns SubmittedAt in its canonical textual form.
func (s Submission) Timestamp() string {
	return s.SubmittedAt.UTC().Format(TimestampLayout)
}

// Reference returns the reference number quoted to the customer.
func (s Submission) Reference() string {
	return s.ID.String()
}
