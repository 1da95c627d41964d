// Package mail delivers rendered invoices over SMTP.
package mail

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
	"github.com/invoicehub/backend/internal/infrastructure/config"
)

// SMTPMailer sends invoice emails through a plain SMTP relay
type SMTPMailer struct {
	addr     string
	from     string
	auth     smtp.Auth
	logger   *zap.Logger
	sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPMailerOption configures the mailer
type SMTPMailerOption func(*SMTPMailer)

// WithSendFunc overrides the SMTP send call, used in tests
func WithSendFunc(fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) SMTPMailerOption {
	return func(m *SMTPMailer) { m.sendFunc = fn }
}

// NewSMTPMailer creates a mailer from configuration
func NewSMTPMailer(cfg *config.MailConfig, logger *zap.Logger, opts ...SMTPMailerOption) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mail host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mail sender address is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	m := &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:     cfg.From,
		auth:     auth,
		logger:   logger,
		sendFunc: smtp.SendMail,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SendInvoice delivers an HTML invoice email to the recipient
func (m *SMTPMailer) SendInvoice(ctx context.Context, recipient, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(recipient) == "" {
		return fmt.Errorf("recipient address is required")
	}

	msg := buildMessage(m.from, recipient, subject, htmlBody)

	start := time.Now()
	if err := m.sendFunc(m.addr, m.auth, m.from, []string{recipient}, msg); err != nil {
		m.logger.Error("invoice email delivery failed",
			zap.String("recipient", recipient),
			zap.Error(err))
		return fmt.Errorf("failed to send invoice email: %w", err)
	}

	m.logger.Info("invoice email sent",
		zap.String("recipient", recipient),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body. Header
// values are folded through MIME Q-encoding so subjects with non-ASCII
// characters survive transport.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}

var _ appbilling.InvoiceMailer = (*SMTPMailer)(nil)
