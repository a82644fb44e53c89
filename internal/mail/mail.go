// Package mail delivers contact form submissions over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// ErrNotConfigured is returned by a Sender built without credentials.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Contact is what a visitor submitted.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Sender delivers a contact submission.
type Sender interface {
	Send(ctx context.Context, c Contact) error
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends through a plain-auth SMTP relay.
type SMTPSender struct {
	cfg  Config
	send SendFunc
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}
}

// WithSendFunc swaps the transport; tests use it to capture messages.
func (s *SMTPSender) WithSendFunc(fn SendFunc) *SMTPSender {
	s.send = fn
	return s
}

func (s *SMTPSender) Send(ctx context.Context, c Contact) error {
	if s.cfg.User == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := s.send(addr, auth, s.cfg.User, []string{s.cfg.To}, Compose(s.cfg.User, s.cfg.To, c)); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

// Compose builds the RFC 5322 message for a submission. Header values are
// stripped of line breaks so a visitor cannot inject headers.
func Compose(from, to string, c Contact) []byte {
	subject := "Portfolio Contact: " + headerSafe(c.Name)
	if s := headerSafe(c.Subject); s != "" {
		subject += " - " + s
	}

	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, c.Name, c.Email, c.Subject, c.Message)

	var b strings.Builder
	b.WriteString("To: " + headerSafe(to) + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + headerSafe(from) + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(c.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func headerSafe(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// Discard is a Sender used when mail is disabled.
type Discard struct{}

func (Discard) Send(context.Context, Contact) error { return ErrNotConfigured }
