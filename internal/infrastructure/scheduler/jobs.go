package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/hoa/backend/internal/application/billing"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/hoa/backend/internal/infrastructure/mailer"
	"go.uber.org/zap"
)

// InvoiceGenerator issues the invoices for one billing cycle
type InvoiceGenerator interface {
	GenerateInvoices(ctx context.Context, dueDate time.Time) (*appbilling.GenerateInvoicesResult, error)
}

// BillingJobs bundles the recurring dues work: opening the next billing
// cycle and reminding homeowners of invoices about to fall due.
type BillingJobs struct {
	invoices    InvoiceGenerator
	paymentRepo billing.PaymentRepository
	lotRepo     property.LotRepository
	blockRepo   property.BlockRepository
	userRepo    identity.UserRepository
	mailer      mailer.Mailer
	config      config.BillingConfig
	logger      *zap.Logger
}

// NewBillingJobs creates the billing job bundle
func NewBillingJobs(
	invoices InvoiceGenerator,
	paymentRepo billing.PaymentRepository,
	lotRepo property.LotRepository,
	blockRepo property.BlockRepository,
	userRepo identity.UserRepository,
	m mailer.Mailer,
	cfg config.BillingConfig,
	logger *zap.Logger,
) *BillingJobs {
	return &BillingJobs{
		invoices:    invoices,
		paymentRepo: paymentRepo,
		lotRepo:     lotRepo,
		blockRepo:   blockRepo,
		userRepo:    userRepo,
		mailer:      m,
		config:      cfg,
		logger:      logger,
	}
}

// NextDueDate returns the upcoming due date as of now: the configured day
// of the current month, or of the next month once that day has passed.
func (j *BillingJobs) NextDueDate(now time.Time) time.Time {
	due := time.Date(now.Year(), now.Month(), j.config.DueDay, 0, 0, 0, 0, now.Location())
	if !due.After(now.Truncate(24 * time.Hour)) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}

// RunBillingCycle issues invoices for the upcoming due date. Lots that
// already hold an invoice for that date are skipped, so running the job
// more than once per cycle is harmless.
func (j *BillingJobs) RunBillingCycle(ctx context.Context) error {
	dueDate := j.NextDueDate(time.Now())

	result, err := j.invoices.GenerateInvoices(ctx, dueDate)
	if err != nil {
		j.logger.Error("Billing cycle failed",
			zap.Time("due_date", dueDate),
			zap.Error(err))
		return err
	}

	j.logger.Info("Billing cycle finished",
		zap.Time("due_date", dueDate),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return nil
}

// SendPaymentReminders emails every homeowner whose unpaid invoice falls
// due within the configured lead window. Returns how many reminders went
// out; individual send failures are logged and skipped.
func (j *BillingJobs) SendPaymentReminders(ctx context.Context) (int, error) {
	now := time.Now()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, j.config.ReminderLeadDays)

	payments, err := j.paymentRepo.FindUnpaidDueBetween(ctx, from, to)
	if err != nil {
		j.logger.Error("Could not load upcoming dues for reminders", zap.Error(err))
		return 0, err
	}

	sent := 0
	for _, payment := range payments {
		homeowner, err := j.userRepo.FindByID(ctx, payment.HomeownerID)
		if err != nil || homeowner == nil {
			j.logger.Warn("Skipping reminder, homeowner not found",
				zap.String("payment_id", payment.ID.String()))
			continue
		}

		if err := j.mailer.SendPaymentReminder(ctx, mailer.PaymentReminderEmail{
			To:       homeowner.Email,
			Name:     homeowner.FullName,
			LotLabel: j.lotLabel(ctx, payment.LotID),
			Amount:   payment.Amount.String(),
			DueDate:  payment.DueDate,
		}); err != nil {
			j.logger.Warn("Failed to send payment reminder",
				zap.String("payment_id", payment.ID.String()),
				zap.Error(err))
			continue
		}
		sent++
	}

	j.logger.Info("Payment reminders sent",
		zap.Int("sent", sent),
		zap.Int("due_soon", len(payments)),
		zap.Time("window_end", to))
	return sent, nil
}

func (j *BillingJobs) lotLabel(ctx context.Context, lotID uuid.UUID) string {
	lot, err := j.lotRepo.FindByID(ctx, lotID)
	if err != nil || lot == nil {
		return ""
	}
	if block, err := j.blockRepo.FindByID(ctx, lot.BlockID); err == nil && block != nil {
		return lot.Label(block.BlockNumber)
	}
	return lot.LotNumber
}
