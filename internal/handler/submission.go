package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// CreateSubmission handles POST /submissions.
//
//	200 accepted: envelope with submissionId and timestamp
//	400 body not decodable, or validation failed (errors[] itemizes)
//	413 body over the configured limit
//	500 storage or notification failure
func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := s.logger.With("request_id", chimiddleware.GetReqID(ctx))

	in, err := decodeSubmission(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.WarnContext(ctx, "submission body too large", "limit", tooLarge.Limit)
			respondJSON(w, http.StatusRequestEntityTooLarge, errorBody(msgTooLarge))
			return
		}
		log.WarnContext(ctx, "malformed submission body", "error", err)
		respondJSON(w, http.StatusBadRequest, errorBody(msgMalformed))
		return
	}

	log.DebugContext(ctx, "submission received",
		"destination", in.Destination,
		"travel_date_start", in.TravelDateStart,
		"travel_date_end", in.TravelDateEnd,
		"travelers", in.Travelers,
	)

	created, err := s.submissions.Submit(ctx, in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			log.WarnContext(ctx, "submission rejected", "violations", verr.Violations)
			respondJSON(w, http.StatusBadRequest, validationBody(verr))
			return
		}
		// Persistence and delivery failures look the same to the caller.
		log.ErrorContext(ctx, "submission failed",
			"stored", errors.Is(err, domain.ErrDelivery),
			"error", err,
		)
		respondJSON(w, http.StatusInternalServerError, errorBody(msgProcessingError))
		return
	}

	respondJSON(w, http.StatusOK, successBody(created))
}

// rejectTooLarge answers requests whose declared Content-Length is over the
// limit, before any of the body is read.
func (s *Server) rejectTooLarge(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "submission body too large",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"content_length", r.ContentLength,
	)
	respondJSON(w, http.StatusRequestEntityTooLarge, errorBody(msgTooLarge))
}

// decodeSubmission reads exactly one JSON object from body. Empty bodies,
// wrong field types and trailing data are reported as domain.ErrMalformedRequest;
// a size-limit error from http.MaxBytesReader is returned unwrapped as well.
func decodeSubmission(body io.Reader) (domain.SubmissionInput, error) {
	var in domain.SubmissionInput
	dec := json.NewDecoder(body)

	if err := dec.Decode(&in); err != nil {
		return domain.SubmissionInput{}, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return domain.SubmissionInput{}, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	return in, nil
}
