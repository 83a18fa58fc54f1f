package jobs

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers a rendered message to a recipient list.
type Mailer interface {
	Send(from string, to []string, subject, body string) error
}

// SMTPMailer sends mail over a plain SMTP relay.
type SMTPMailer struct {
	Addr     string
	Username string
	Password string
	Host     string
}

// NewSMTPMailer constructs a mailer for host:port; auth is used only
// when a username is configured.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Host:     host,
		Username: username,
		Password: password,
	}
}

func (m *SMTPMailer) Send(from string, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	if err := smtp.SendMail(m.Addr, auth, from, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("jobs: send mail: %w", err)
	}
	return nil
}
