// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email over SMTP. Sends are
// fire-and-forget: failures are logged, never retried, never surfaced to
// the end user.
package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Email is one outbound message. HTMLBody is optional; when present the
// message is sent as multipart/alternative.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer holds SMTP connection details. The zero value is unusable; build
// one with New.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger
}

// New builds a Mailer. user/pass may be empty for unauthenticated relays
// (local Mailpit, office relay).
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Send delivers one message synchronously.
func (m *Mailer) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	msg := m.buildMessage(e)
	if err := smtp.SendMail(addr, auth, m.from, []string{e.To}, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", e.To, err)
	}
	return nil
}

// SendAsync delivers a message on a fresh goroutine and logs the outcome.
// Callers never block on, or learn about, delivery.
func (m *Mailer) SendAsync(e Email) {
	go func() {
		if err := m.Send(e); err != nil {
			m.log.Warn("email delivery failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
			return
		}
		m.log.Info("email sent",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
	}()
}

const crlf = "\r\n"

func (m *Mailer) buildMessage(e Email) []byte {
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	if e.HTMLBody == "" {
		msg := "From: " + from + crlf +
			"To: " + e.To + crlf +
			"Subject: " + e.Subject + crlf +
			"MIME-Version: 1.0" + crlf +
			`Content-Type: text/plain; charset="UTF-8"` + crlf +
			crlf +
			e.TextBody
		return []byte(msg)
	}

	const boundary = "kulturhub-alt-boundary"
	msg := "From: " + from + crlf +
		"To: " + e.To + crlf +
		"Subject: " + e.Subject + crlf +
		"MIME-Version: 1.0" + crlf +
		`Content-Type: multipart/alternative; boundary="` + boundary + `"` + crlf +
		crlf +
		"--" + boundary + crlf +
		`Content-Type: text/plain; charset="UTF-8"` + crlf +
		crlf +
		e.TextBody + crlf +
		"--" + boundary + crlf +
		`Content-Type: text/html; charset="UTF-8"` + crlf +
		crlf +
		e.HTMLBody + crlf +
		"--" + boundary + "--" + crlf
	return []byte(msg)
}
