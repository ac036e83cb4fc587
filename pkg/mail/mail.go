// Package mail provides the outbound mail transport for the form pipeline.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ErrNotConfigured is returned when the SMTP host or sender is not set.
var ErrNotConfigured = errors.New("mail: not configured")

// SMTPMailer は net/smtp による Mailer 実装
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	Host     string // auth用ホスト名（Addr のホスト部）
}

// NewSMTPMailer creates an SMTPMailer. username/password may be empty for an
// unauthenticated relay.
func NewSMTPMailer(host, port, from, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Addr:     host + ":" + port,
		From:     from,
		Username: username,
		Password: password,
		Host:     host,
	}
}

var _ Mailer = (*SMTPMailer)(nil)

// Send hands the message to the SMTP server in one blocking call. There is
// no retry; a handoff failure surfaces to the caller as-is.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Host == "" || m.From == "" {
		return ErrNotConfigured
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg.String()))
}
