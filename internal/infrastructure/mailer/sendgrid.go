package mailer

import (
	"context"
	"fmt"

	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer implements Mailer using the SendGrid API
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// NewSendGridMailer creates a new SendGrid-backed mailer
func NewSendGridMailer(cfg config.MailConfig, logger *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridKey),
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
		logger:   logger,
	}
}

// SendApplicationApproved notifies an applicant their registration was approved
func (m *SendGridMailer) SendApplicationApproved(ctx context.Context, email ApplicationApprovedEmail) error {
	subject := "Your registration has been approved"
	plain := fmt.Sprintf("Hi %s,\n\nYour registration for %s has been approved. You can now log in to the homeowner portal.\n", email.Name, email.LotLabel)
	html := fmt.Sprintf(`<html><body>
<h2>Welcome to the community!</h2>
<p>Hi %s,</p>
<p>Your registration for <strong>%s</strong> has been approved. You can now log in to the homeowner portal to view your dues and association policies.</p>
</body></html>`, email.Name, email.LotLabel)

	return m.send(ctx, email.To, email.Name, subject, plain, html)
}

// SendApplicationRejected notifies an applicant their registration was rejected
func (m *SendGridMailer) SendApplicationRejected(ctx context.Context, email ApplicationRejectedEmail) error {
	subject := "Update on your registration"
	reason := email.Reason
	if reason == "" {
		reason = "Please contact the association office for details."
	}
	plain := fmt.Sprintf("Hi %s,\n\nWe could not approve your registration. %s\n", email.Name, reason)
	html := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>We could not approve your registration.</p>
<p>%s</p>
</body></html>`, email.Name, reason)

	return m.send(ctx, email.To, email.Name, subject, plain, html)
}

// SendPaymentReminder reminds a homeowner of an upcoming due
func (m *SendGridMailer) SendPaymentReminder(ctx context.Context, email PaymentReminderEmail) error {
	dueDate := email.DueDate.Format("January 2, 2006")
	subject := fmt.Sprintf("Association dues reminder: due %s", dueDate)
	plain := fmt.Sprintf("Hi %s,\n\nYour association dues of %s for %s are due on %s.\n", email.Name, email.Amount, email.LotLabel, dueDate)
	html := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your association dues of <strong>%s</strong> for <strong>%s</strong> are due on <strong>%s</strong>.</p>
<p>Please settle on or before the due date to avoid your account becoming overdue.</p>
</body></html>`, email.Name, email.Amount, email.LotLabel, dueDate)

	return m.send(ctx, email.To, email.Name, subject, plain, html)
}

// SendPaymentConfirmation confirms a recorded payment
func (m *SendGridMailer) SendPaymentConfirmation(ctx context.Context, email PaymentConfirmationEmail) error {
	paidOn := email.PaymentDate.Format("January 2, 2006")
	subject := "Payment received"
	plain := fmt.Sprintf("Hi %s,\n\nWe received your payment of %s on %s. Reference: %s.\n", email.Name, email.Amount, paidOn, email.ReferenceNumber)
	html := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>We received your payment of <strong>%s</strong> on %s.</p>
<p>Reference number: %s</p>
</body></html>`, email.Name, email.Amount, paidOn, email.ReferenceNumber)

	return m.send(ctx, email.To, email.Name, subject, plain, html)
}

func (m *SendGridMailer) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Warn("SendGrid rejected email",
			zap.Int("status", response.StatusCode),
			zap.String("subject", subject))
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}

var _ Mailer = (*SendGridMailer)(nil)
