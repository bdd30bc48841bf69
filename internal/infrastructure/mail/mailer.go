package mail

import (
	"fmt"
	"net/smtp"

	"golang.org/x/exp/slog"
)

// Sender delivers short out-of-band messages (one-time codes).
type Sender interface {
	Send(to, subject, body string) error
}

// SMTP sends through a plain STARTTLS-capable relay.
type SMTP struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTP(host string, port int, user, password, from string) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.password, s.host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, to, subject, body))

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Log is the local-environment fallback: codes go to the log instead of a
// mailbox.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log.With("component", "mail_log")}
}

func (l *Log) Send(to, subject, body string) error {
	l.log.Info("mail suppressed", "to", to, "subject", subject, "body", body)
	return nil
}
