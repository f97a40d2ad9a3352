package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
)

// MetricHooks are optional callbacks invoked after each send attempt.
// Keeping them as plain funcs means this package does not import prometheus.
type MetricHooks struct {
	OnSent   func(Kind)
	OnFailed func(Kind)
}

// Dispatcher sends the customer confirmation and the business notification
// for a submission. The two sends are independent: a failure of the first
// does not skip the second, and neither is retried.
type Dispatcher struct {
	sender   Sender
	from     string
	operator string
	logger   *slog.Logger
	hooks    MetricHooks
}

// NewDispatcher constructs a Dispatcher. from is the sender address on both
// messages; operator receives the business notification.
func NewDispatcher(sender Sender, from, operator string, logger *slog.Logger, hooks MetricHooks) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender:   sender,
		from:     from,
		operator: operator,
		logger:   logger,
		hooks:    hooks,
	}
}

// Dispatch renders and sends both notifications, customer first.
// It returns nil only if both were sent; otherwise the returned error wraps
// domain.ErrDelivery and every individual failure.
func (d *Dispatcher) Dispatch(ctx context.Context, s domain.Submission) error {
	var errs []error

	if err := d.send(ctx, KindCustomer, s.Email, s, RenderCustomer); err != nil {
		errs = append(errs, err)
	}
	if err := d.send(ctx, KindBusiness, d.operator, s, RenderBusiness); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, errors.Join(errs...))
	}
	return nil
}

func (d *Dispatcher) send(
	ctx context.Context,
	kind Kind,
	to string,
	s domain.Submission,
	renderFn func(domain.Submission) (Content, error),
) error {
	content, err := renderFn(s)
	if err == nil {
		err = d.sender.Send(ctx, Message{
			From:      d.from,
			To:        to,
			Subject:   content.Subject,
			PlainText: content.PlainText,
			HTML:      content.HTML,
		})
	}

	if err != nil {
		d.logger.ErrorContext(ctx, "notification failed",
			"kind", string(kind),
			"submission_id", s.Reference(),
			"error", err,
		)
		if d.hooks.OnFailed != nil {
			d.hooks.OnFailed(kind)
		}
		return fmt.Errorf("notify.Dispatcher: %s: %w", kind, err)
	}

	d.logger.DebugContext(ctx, "notification sent", "kind", string(kind), "submission_id", s.Reference())
	if d.hooks.OnSent != nil {
		d.hooks.OnSent(kind)
	}
	return nil
}
