package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
)

// Payment represents one dues invoice for a homeowner's lot
// It is created unpaid when a billing cycle opens and settled at most once
type Payment struct {
	shared.BaseAggregateRoot
	HomeownerID     uuid.UUID
	LotID           uuid.UUID
	Amount          valueobject.Money
	PaymentType     PaymentType
	DueDate         time.Time
	PaymentDate     *time.Time
	MonthsCovered   int
	ReferenceNumber string
	Notes           string
}

// NewPayment creates an unpaid invoice
// The amount must come from the rate resolved for (paymentType, dueDate)
func NewPayment(homeownerID, lotID uuid.UUID, amount valueobject.Money, paymentType PaymentType, dueDate time.Time) (*Payment, error) {
	if homeownerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Homeowner ID cannot be empty")
	}
	if lotID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment type must be monthly, quarterly, or annually")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Due date cannot be empty")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HomeownerID:       homeownerID,
		LotID:             lotID,
		Amount:            amount,
		PaymentType:       paymentType,
		DueDate:           dueDate,
		MonthsCovered:     paymentType.MonthsCovered(),
	}

	payment.AddDomainEvent(NewInvoiceIssuedEvent(payment))

	return payment, nil
}

// IsPaid returns true once a payment date has been recorded
func (p *Payment) IsPaid() bool {
	return p.PaymentDate != nil
}

// StatusAt classifies the invoice at the given time
func (p *Payment) StatusAt(now time.Time) PaymentStatus {
	return Classify(p.DueDate, p.PaymentDate, p.MonthsCovered, now)
}

// MarkPaid records the settlement of the invoice
// Settling an already-paid invoice is rejected
func (p *Payment) MarkPaid(paymentDate time.Time, referenceNumber string) error {
	if p.IsPaid() {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Payment has already been recorded")
	}
	if paymentDate.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment date cannot be empty")
	}

	p.PaymentDate = &paymentDate
	p.ReferenceNumber = strings.TrimSpace(referenceNumber)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentConfirmedEvent(p))

	return nil
}

// SetNotes updates the free-form notes on the invoice
func (p *Payment) SetNotes(notes string) {
	p.Notes = strings.TrimSpace(notes)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// PeriodEnd returns the last day covered by this invoice
func (p *Payment) PeriodEnd() time.Time {
	return p.DueDate.AddDate(0, p.MonthsCovered, -1)
}
