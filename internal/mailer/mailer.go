package mailer

import (
	"github.com/blogify/blog-service/internal/config"
	gomail "gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to string, subject string, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) Send(to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
