package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"shoplite/internal/config"
)

// SMTPMailer sends the password-reset mail. With no SMTP host configured it
// is a no-op, which keeps local development working without a mail account.
type SMTPMailer struct {
	cfg config.Config
}

func New(cfg config.Config) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

func (m *SMTPMailer) SendPasswordReset(to, tempPassword string) error {
	if m.cfg.SMTPHost == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "shoplite - your temporary password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<div>Your temporary password is <b>%s</b>. Please log in and change it.</div>`, tempPassword))

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	return d.DialAndSend(msg)
}
