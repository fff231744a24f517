package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePayment = "Payment"
	AggregateTypeDueRate = "DueRate"
)

// Billing domain event types
const (
	EventTypeInvoiceIssued      = "InvoiceIssued"
	EventTypePaymentConfirmed   = "PaymentConfirmed"
	EventTypeDueRateCreated     = "DueRateCreated"
	EventTypeDueRateDeactivated = "DueRateDeactivated"
)

// InvoiceIssuedEvent is published when an unpaid invoice is created
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	HomeownerID uuid.UUID   `json:"homeowner_id"`
	LotID       uuid.UUID   `json:"lot_id"`
	Amount      string      `json:"amount"`
	PaymentType PaymentType `json:"payment_type"`
	DueDate     time.Time   `json:"due_date"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(payment *Payment) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypePayment, payment.ID),
		HomeownerID:     payment.HomeownerID,
		LotID:           payment.LotID,
		Amount:          payment.Amount.StringFixed(2),
		PaymentType:     payment.PaymentType,
		DueDate:         payment.DueDate,
	}
}

// PaymentConfirmedEvent is published when an invoice is settled
type PaymentConfirmedEvent struct {
	shared.BaseDomainEvent
	HomeownerID     uuid.UUID `json:"homeowner_id"`
	LotID           uuid.UUID `json:"lot_id"`
	Amount          string    `json:"amount"`
	PaymentDate     time.Time `json:"payment_date"`
	ReferenceNumber string    `json:"reference_number"`
}

// NewPaymentConfirmedEvent creates a new PaymentConfirmedEvent
func NewPaymentConfirmedEvent(payment *Payment) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentConfirmed, AggregateTypePayment, payment.ID),
		HomeownerID:     payment.HomeownerID,
		LotID:           payment.LotID,
		Amount:          payment.Amount.StringFixed(2),
		PaymentDate:     *payment.PaymentDate,
		ReferenceNumber: payment.ReferenceNumber,
	}
}

// DueRateCreatedEvent is published when a rate row is added
type DueRateCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentType   PaymentType `json:"payment_type"`
	Amount        string      `json:"amount"`
	EffectiveDate time.Time   `json:"effective_date"`
}

// NewDueRateCreatedEvent creates a new DueRateCreatedEvent
func NewDueRateCreatedEvent(rate *DueRate) *DueRateCreatedEvent {
	return &DueRateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDueRateCreated, AggregateTypeDueRate, rate.ID),
		PaymentType:     rate.PaymentType,
		Amount:          rate.Amount.StringFixed(2),
		EffectiveDate:   rate.EffectiveDate,
	}
}

// DueRateDeactivatedEvent is published when a rate row is retired
type DueRateDeactivatedEvent struct {
	shared.BaseDomainEvent
	PaymentType PaymentType `json:"payment_type"`
}

// NewDueRateDeactivatedEvent creates a new DueRateDeactivatedEvent
func NewDueRateDeactivatedEvent(rate *DueRate) *DueRateDeactivatedEvent {
	return &DueRateDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDueRateDeactivated, AggregateTypeDueRate, rate.ID),
		PaymentType:     rate.PaymentType,
	}
}
