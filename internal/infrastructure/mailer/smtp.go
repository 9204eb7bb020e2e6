package mailer

import (
	"context"
	"fmt"

	"pollos/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dialer is the subset of *gomail.Dialer used to deliver messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers plain-text notifications. Port 587 negotiates STARTTLS.
type SMTPMailer struct {
	dialer     Dialer
	senderName string
	sender     string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		senderName: cfg.SenderName,
		sender:     cfg.SenderAddress,
	}
}

func newSMTPMailerWithDialer(dialer Dialer, senderName, sender string) *SMTPMailer {
	return &SMTPMailer{dialer: dialer, senderName: senderName, sender: sender}
}

func (m *SMTPMailer) Send(ctx context.Context, subject, body, recipient string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.sender, m.senderName)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", recipient, err)
	}
	return nil
}

// LogMailer is used when no SMTP server is configured; it only logs.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, subject, body, recipient string) error {
	m.logger.Info("mail delivery disabled, notification logged",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.Int("bodyLength", len(body)),
	)
	return nil
}
