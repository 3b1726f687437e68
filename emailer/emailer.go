package emailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"os"
)

// Sender dispatches application lifecycle emails. Handlers depend on this
// interface so dispatch can be faked in tests.
type Sender interface {
	SendApplicationAccepted(ctx context.Context, to string, data ApplicationMail) error
	SendApplicationRejected(ctx context.Context, to string, data ApplicationMail) error
	SendApplicationReceived(ctx context.Context, to string, data ApplicationMail) error
}

// ApplicationMail carries the fields the templates interpolate.
type ApplicationMail struct {
	ApplicantName string
	JobTitle      string
	PosterName    string
	AppURL        string
}

// SMTPSender sends through a plain SMTP transport configured from the
// environment: SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM_EMAIL.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		host: envOr("SMTP_HOST", "smtp.gmail.com"),
		port: envOr("SMTP_PORT", "587"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: envOr("SMTP_FROM_EMAIL", "no-reply@agora.local"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *SMTPSender) SendApplicationAccepted(ctx context.Context, to string, data ApplicationMail) error {
	return s.send(to, "Your application was accepted", acceptedTmpl, data)
}

func (s *SMTPSender) SendApplicationRejected(ctx context.Context, to string, data ApplicationMail) error {
	return s.send(to, "An update on your application", rejectedTmpl, data)
}

func (s *SMTPSender) SendApplicationReceived(ctx context.Context, to string, data ApplicationMail) error {
	return s.send(to, "New application received", receivedTmpl, data)
}

func (s *SMTPSender) send(to, subject string, tmpl templateName, data ApplicationMail) error {
	if data.AppURL == "" {
		data.AppURL = os.Getenv("APP_URL")
	}

	body, err := Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{to}, msg.Bytes())
}
