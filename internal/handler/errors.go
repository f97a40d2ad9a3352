package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// Envelope statuses.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response messages. 500 responses never include error detail.
const (
	msgSubmitted       = "Form submitted successfully"
	msgMalformed       = "Malformed request body"
	msgTooLarge        = "Request body too large"
	msgInvalidPrefix   = "Invalid submission: "
	msgProcessingError = "Error processing submission"
)

// Envelope is the single response shape of the submission endpoint.
// Callers can branch on Status alone; the optional fields are present only
// when they apply.
type Envelope struct {
	Status       string             `json:"status"`
	Message      string             `json:"message"`
	SubmissionID *uuid.UUID         `json:"submissionId,omitempty"`
	Timestamp    string             `json:"timestamp,omitempty"`
	Errors       []domain.Violation `json:"errors,omitempty"`
}

// successBody returns the envelope for an accepted submission.
func successBody(s domain.Submission) Envelope {
	id := s.ID
	return Envelope{
		Status:       statusSuccess,
		Message:      msgSubmitted,
		SubmissionID: &id,
		Timestamp:    s.Timestamp(),
	}
}

// validationBody returns the envelope for a rejected submission, itemizing
// every violation.
func validationBody(verr *domain.ValidationError) Envelope {
	msgs := make([]string, len(verr.Violations))
	for i, v := range verr.Violations {
		msgs[i] = v.Message
	}
	return Envelope{
		Status:  statusError,
		Message: msgInvalidPrefix + strings.Join(msgs, "; "),
		Errors:  verr.Violations,
	}
}

// errorBody returns an envelope carrying only a message.
func errorBody(message string) Envelope {
	return Envelope{Status: statusError, Message: message}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
