package mailer

import (
	"context"
	"time"
)

// ApplicationApprovedEmail carries the data for the approval notification
type ApplicationApprovedEmail struct {
	To       string
	Name     string
	LotLabel string
}

// ApplicationRejectedEmail carries the data for the rejection notification
type ApplicationRejectedEmail struct {
	To     string
	Name   string
	Reason string
}

// PaymentReminderEmail carries the data for the dues reminder
type PaymentReminderEmail struct {
	To       string
	Name     string
	LotLabel string
	Amount   string
	DueDate  time.Time
}

// PaymentConfirmationEmail carries the data for the payment receipt notification
type PaymentConfirmationEmail struct {
	To              string
	Name            string
	Amount          string
	ReferenceNumber string
	PaymentDate     time.Time
}

// Mailer sends transactional email to association members.
// Implementations must be safe for concurrent use.
type Mailer interface {
	SendApplicationApproved(ctx context.Context, email ApplicationApprovedEmail) error
	SendApplicationRejected(ctx context.Context, email ApplicationRejectedEmail) error
	SendPaymentReminder(ctx context.Context, email PaymentReminderEmail) error
	SendPaymentConfirmation(ctx context.Context, email PaymentConfirmationEmail) error
}

// NoopMailer discards all email. Used when mail is disabled and in tests.
type NoopMailer struct{}

// NewNoopMailer creates a mailer that does nothing
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

func (NoopMailer) SendApplicationApproved(context.Context, ApplicationApprovedEmail) error {
	return nil
}

func (NoopMailer) SendApplicationRejected(context.Context, ApplicationRejectedEmail) error {
	return nil
}

func (NoopMailer) SendPaymentReminder(context.Context, PaymentReminderEmail) error {
	return nil
}

func (NoopMailer) SendPaymentConfirmation(context.Context, PaymentConfirmationEmail) error {
	return nil
}

var _ Mailer = (*NoopMailer)(nil)
