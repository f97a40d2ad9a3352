// Package service contains the business logic for the travel inquiry API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// notification calls. No SQL or HTTP lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
	"github.com/pkordes/travel-inquiry/backend/internal/repo"
)

// Outcome labels how a submission attempt ended, for metrics.
type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeInvalid        Outcome = "invalid"
	OutcomePersistFailed  Outcome = "persist_failed"
	OutcomeDeliveryFailed Outcome = "delivery_failed"
)

// Notifier sends the notifications for a stored submission.
// *notify.Dispatcher satisfies it.
type Notifier interface {
	Dispatch(ctx context.Context, s domain.Submission) error
}

// MetricHooks are optional callbacks for instrumentation.
type MetricHooks struct {
	OnSubmission func(outcome Outcome, elapsed time.Duration)
}

// SubmissionService runs the intake flow for one inquiry:
// validate → build → persist → notify. It holds no per-request state.
type SubmissionService struct {
	repo     repo.SubmissionRepo
	notifier Notifier
	builder  RecordBuilder
	logger   *slog.Logger
	hooks    MetricHooks
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(r repo.SubmissionRepo, n Notifier, logger *slog.Logger, hooks MetricHooks) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionService{repo: r, notifier: n, logger: logger, hooks: hooks}
}

// WithBuilder replaces the record builder, letting tests pin ids and clocks.
func (s *SubmissionService) WithBuilder(b RecordBuilder) *SubmissionService {
	s.builder = b
	return s
}

// Submit validates, stores and announces one inquiry.
//
// Errors:
//   - *domain.ValidationError (matches domain.ErrValidation): nothing was stored or sent.
//   - domain.ErrPersistence: nothing was stored or sent.
//   - domain.ErrDelivery: the record WAS stored; the returned Submission is
//     valid and at least one email failed.
func (s *SubmissionService) Submit(ctx context.Context, in domain.SubmissionInput) (domain.Submission, error) {
	start := time.Now()

	if err := Validate(in); err != nil {
		s.observe(OutcomeInvalid, start)
		return domain.Submission{}, err
	}

	rec := s.builder.Build(in)
	log := s.logger.With("submission_id", rec.Reference())

	if err := s.repo.Put(ctx, rec); err != nil {
		log.ErrorContext(ctx, "failed to store submission", "error", err)
		s.observe(OutcomePersistFailed, start)
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Submit: %w: %w", domain.ErrPersistence, err)
	}

	if err := s.notifier.Dispatch(ctx, rec); err != nil {
		// No rollback: the record stays stored.
		log.ErrorContext(ctx, "submission stored but notification failed", "error", err)
		s.observe(OutcomeDeliveryFailed, start)
		if !errors.Is(err, domain.ErrDelivery) {
			err = fmt.Errorf("%w: %w", domain.ErrDelivery, err)
		}
		return rec, fmt.Errorf("service.SubmissionService.Submit: %w", err)
	}

	log.InfoContext(ctx, "submission accepted", "submitted_at", rec.Timestamp())
	s.observe(OutcomeAccepted, start)
	return rec, nil
}

func (s *SubmissionService) observe(o Outcome, start time.Time) {
	if s.hooks.OnSubmission != nil {
		s.hooks.OnSubmission(o, time.Since(start))
	}
}
