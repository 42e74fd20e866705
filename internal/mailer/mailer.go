package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer sends transactional emails through Resend.
type Mailer struct {
	client   *resend.Client
	from     string
	logger   *zap.Logger
	disabled bool
}

// NewMailer creates a mailer. With an empty API key it runs disabled and
// logs instead of sending, which keeps local development working without
// credentials.
func NewMailer(apiKey, fromAddress, fromName string, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Mailer{
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
		logger: logger,
	}
	if apiKey == "" {
		m.disabled = true
		logger.Warn("RESEND_API_KEY not set, emails will be logged only")
		return m
	}
	m.client = resend.NewClient(apiKey)
	return m
}

// Send renders the template with data and sends it to the recipient.
func (m *Mailer) Send(to, subject string, tmpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email template: %w", err)
	}
	if m.disabled {
		m.logger.Info("email suppressed (mailer disabled)", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}
	sent, err := m.client.Emails.Send(params)
	if err != nil {
		m.logger.Error("send email failed", zap.Error(err), zap.String("to", to), zap.String("subject", subject))
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("email sent", zap.String("email_id", sent.Id), zap.String("to", to), zap.String("subject", subject))
	return nil
}
