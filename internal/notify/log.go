package notify

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of delivering them.
// Used when MAIL_TRANSPORT=log, the default for local development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send never fails.
func (l *LogSender) Send(ctx context.Context, msg Message) error {
	l.logger.InfoContext(ctx, "email (not sent)",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.PlainText,
	)
	return nil
}

var _ Sender = (*LogSender)(nil)
