// internal/mailer/smtp.go
package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	mail "gopkg.in/gomail.v2"
)

// SMTPSender sends mail through an SMTP relay via gomail. SMTP gives us no
// provider message id back, so one is generated per accepted message.
type SMTPSender struct {
	dialer *mail.Dialer
}

// NewSMTPSender sets up a dialer against host:port with the given credentials.
func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{dialer: mail.NewDialer(host, port, user, pass)}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", msg.From, msg.FromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	if p := priorityHeader(msg.Priority); p != "" {
		m.SetHeader("X-Priority", p)
	}
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("could not send email: %w", err)
	}
	return uuid.NewString(), nil
}

func priorityHeader(priority string) string {
	switch priority {
	case "urgent":
		return "1"
	case "high":
		return "2"
	default:
		return ""
	}
}
