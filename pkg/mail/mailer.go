package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/AmineGaf/fraud-detection-system/internal/config"
)

// Mailer delivers outbound mail. Delivery details are a collaborator concern;
// services only hand over a recipient and a reset token.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

type smtpMailer struct {
	host        string
	port        string
	user        string
	password    string
	fromName    string
	from        string
	frontendURL string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		user:        cfg.SMTPUser,
		password:    cfg.SMTPPassword,
		fromName:    cfg.EmailsFromName,
		from:        cfg.EmailsFrom,
		frontendURL: cfg.FrontendURL,
	}
}

// resetLink builds the frontend reset URL; FRONTEND_URL is accepted with or
// without a trailing slash.
func (m *smtpMailer) resetLink(token string) string {
	return strings.TrimSuffix(m.frontendURL, "/") + "/reset-password?token=" + token
}

func (m *smtpMailer) SendPasswordReset(email, token string) error {
	resetLink := m.resetLink(token)

	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: Password Reset Request\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"A password reset was requested for your account.\r\n\r\n"+
			"Reset your password here: %s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		m.fromName, m.from, email, resetLink,
	)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := m.host + ":" + m.port

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(msg))
}
