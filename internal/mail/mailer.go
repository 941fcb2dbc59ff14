// Package mail delivers verification codes over SMTP.
package mail

import (
	"fmt"
	"strconv"
	"time"

	gomail "github.com/wneessen/go-mail"

	"moneynote/internal/config"
	"moneynote/internal/logger"
)

// Mailer dispatches a verification code to an email address.
type Mailer interface {
	SendVerificationCode(to, code string, expiry time.Duration) error
}

// SMTPMailer sends verification codes through an SMTP relay configured from
// the MAIL_* environment variables.
type SMTPMailer struct {
	cfg *config.Config
}

// NewSMTPMailer creates a Mailer backed by SMTP.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendVerificationCode emails the code. In development the code is also
// logged so the flow can be exercised without a mailbox.
func (m *SMTPMailer) SendVerificationCode(to, code string, expiry time.Duration) error {
	if m.cfg.Env == "development" {
		logger.Get().Infof("Verification code for %s: %s", to, code)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.MailFromName, m.cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("MoneyNote 验证码")
	msg.SetBodyString(gomail.TypeTextHTML, verificationBody(code, expiry))

	port, err := strconv.Atoi(m.cfg.MailPort)
	if err != nil {
		return fmt.Errorf("invalid MAIL_PORT %q: %w", m.cfg.MailPort, err)
	}

	client, err := gomail.NewClient(m.cfg.MailHost,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.MailUsername),
		gomail.WithPassword(m.cfg.MailPassword),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	return nil
}

func verificationBody(code string, expiry time.Duration) string {
	return fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>验证码</h2>
			<p>您的验证码是: <strong style="font-size: 24px; color: #007bff;">%s</strong></p>
			<p>验证码将在 %d 分钟后过期。</p>
			<p>如果这不是您的操作，请忽略此邮件。</p>
		</div>`,
		code,
		int(expiry.Minutes()),
	)
}
