package infra

import (
	"fmt"
	"net/smtp"

	"cataldo/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound mail (postventa, cumpleaños).
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Enviar sends a plain-text email to a single recipient.
func (m *Mailer) Enviar(to, asunto, cuerpo string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
