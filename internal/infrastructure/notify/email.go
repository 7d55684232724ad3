package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.MessageSender = (*EmailSender)(nil)

// EmailSender envía los avisos por SMTP al administrador.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailSender construye el sender. from es el usuario SMTP.
func NewEmailSender(host string, port int, username, password, to string) (*EmailSender, error) {
	if host == "" || to == "" {
		return nil, fmt.Errorf("email: host y destinatario son requeridos")
	}
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		to:     to,
	}, nil
}

// Name implementa ports.MessageSender.
func (s *EmailSender) Name() string { return "email" }

// Send implementa ports.MessageSender.
func (s *EmailSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.Message(subject, body)); err != nil {
		return fmt.Errorf("email: enviar a %s: %w", s.to, err)
	}
	return nil
}

// Message construye el mensaje en texto plano.
func (s *EmailSender) Message(subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", s.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}
