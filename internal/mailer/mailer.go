// internal/mailer/mailer.go
package mailer

import "context"

// Message is one outgoing email.
type Message struct {
	From     string
	FromName string
	To       string
	ToName   string
	Subject  string
	HTML     string
	Priority string // normal, high, urgent
}

// Sender delivers a single message and returns the provider message id.
// Errors are opaque provider text; callers classify them with Classify.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}
