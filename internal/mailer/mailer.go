package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/galleria-dev/galleria/internal/config"
)

// Mailer delivers account emails. Handlers depend on the interface so
// tests can capture outgoing mail.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer sends plain-text mail over SMTP. When no credentials are
// configured it runs in dev mode and only logs the message.
type SMTPMailer struct {
	cfg     config.SMTPConfig
	devMode bool
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		devMode: cfg.Username == "" || cfg.Password == "",
	}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf("Please follow this link to reset your password: %s\r\n"+
		"The link is valid for 2 minutes.", resetURL)

	if m.devMode {
		log.Printf("mailer dev mode: to=%s subject=%q body=%q", to, subject, body)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body))

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
