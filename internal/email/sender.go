package email

import "context"

// Message is a single outbound email
type Message struct {
	ToEmail string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers transactional email. Send failures are reported to the
// caller but never abort the operation that triggered the email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender drops messages, used when email delivery is disabled
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg Message) error {
	return nil
}
