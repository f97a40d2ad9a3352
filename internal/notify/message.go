// Package notify composes and delivers the two emails sent for every accepted
// submission: a confirmation to the customer and a notification to the
// business operator.
//
// Rendering is pure (render.go). Delivery goes through a Sender, of which
// there are three: SMTPSender for production mail, WebhookSender for an HTTP
// mail relay, and LogSender for local development.
package notify

import "context"

// Kind names which of the two notifications a message is.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindBusiness Kind = "business"
)

// Message is one outbound email carrying equivalent plain-text and HTML bodies.
type Message struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	PlainText string `json:"text"`
	HTML      string `json:"html"`
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use; the dispatcher never retries a failed Send.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
