package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // SMTP AUTH is enabled when non-empty
	Password string
	Timeout  time.Duration
}

// SMTPSender delivers messages as multipart/alternative emails over SMTP.
// A new connection is dialled per message; the intake rate of an inquiry form
// does not justify holding a connection open between requests.
type SMTPSender struct {
	host string
	opts []mail.Option
}

// NewSMTPSender builds an SMTPSender. STARTTLS is used when the server offers it.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return &SMTPSender{host: cfg.Host, opts: opts}
}

// Send composes msg and delivers it in a single SMTP session.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMail(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildMail converts a Message into a go-mail message with a plain-text body
// and an HTML alternative.
func buildMail(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.PlainText)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

// compile-time check that SMTPSender implements Sender
var _ Sender = (*SMTPSender)(nil)
