package infrastructure

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"

	"github.com/hungersaviour/order-system/notification-service/domain"
)

// SMTPEmailSender delivers emails over plain SMTP. Auth is optional so the
// local mailhog setup works without credentials.
type SMTPEmailSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPEmailSender creates a new SMTP email sender
func NewSMTPEmailSender(host string, port int, username, password, from string) *SMTPEmailSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPEmailSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// Send implements domain.EmailSender. net/smtp has no context support; the
// ctx deadline is not enforced on the wire.
func (s *SMTPEmailSender) Send(ctx context.Context, email domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + email.To + "\r\n")
	msg.WriteString("Subject: " + email.Subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email.To}, []byte(msg.String())); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", email.To)
	}
	return nil
}
