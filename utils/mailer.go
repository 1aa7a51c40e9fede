package utils

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailMessage is one outbound notification.
type EmailMessage struct {
	To      string
	ReplyTo string
	Subject string
	Body    string // plain text
}

// EmailSender sends notification emails. The SMTP implementation is the only
// production one; tests swap in a fake.
type EmailSender interface {
	Send(msg EmailMessage) error
}

// SMTPConfig holds the credentials for the transactional mailbox.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Configured reports whether enough is present to attempt a send.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.From != ""
}

// MissingCredential names the first absent SMTP setting, for the
// misconfiguration error the request-service endpoint returns.
func (c SMTPConfig) MissingCredential() string {
	switch {
	case c.Host == "":
		return "SMTP_HOST"
	case c.Username == "":
		return "SMTP_USERNAME"
	case c.Password == "":
		return "SMTP_PASSWORD"
	case c.From == "":
		return "FROM_EMAIL"
	}
	return ""
}

// Mailer sends mail over SMTP with gomail.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(msg EmailMessage) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	port, err := strconv.Atoi(m.cfg.Port)
	if err != nil || port == 0 {
		port = 587
	}

	d := gomail.NewDialer(m.cfg.Host, port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
