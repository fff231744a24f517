package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateRateRequest appends a new rate row to the schedule
type CreateRateRequest struct {
	PaymentType   string          `json:"payment_type" binding:"required,oneof=monthly quarterly annually"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
}

// RateResponse represents a rate row in API responses
type RateResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentType   string          `json:"payment_type"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate time.Time       `json:"effective_date"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateInvoiceRequest manually issues a single invoice
type CreateInvoiceRequest struct {
	LotID       uuid.UUID `json:"lot_id" binding:"required"`
	PaymentType string    `json:"payment_type" binding:"required,oneof=monthly quarterly annually"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// MarkPaidRequest records a settlement against an invoice
type MarkPaidRequest struct {
	PaymentDate     time.Time `json:"payment_date" binding:"required"`
	ReferenceNumber string    `json:"reference_number" binding:"required,max=100"`
	Notes           string    `json:"notes" binding:"max=1000"`
}

// ListPaymentsRequest contains filters for listing payments
type ListPaymentsRequest struct {
	HomeownerID *uuid.UUID `form:"homeowner_id"`
	LotID       *uuid.UUID `form:"lot_id"`
	Paid        *bool      `form:"paid"`
	PaymentType string     `form:"payment_type" binding:"omitempty,oneof=monthly quarterly annually"`
	DueFrom     *time.Time `form:"due_from" time_format:"2006-01-02"`
	DueTo       *time.Time `form:"due_to" time_format:"2006-01-02"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page        int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// PaymentResponse represents an invoice in API responses.
// Status is derived from the settlement facts at response time and is
// never read from storage.
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	HomeownerID     uuid.UUID       `json:"homeowner_id"`
	LotID           uuid.UUID       `json:"lot_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentType     string          `json:"payment_type"`
	DueDate         time.Time       `json:"due_date"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	MonthsCovered   int             `json:"months_covered"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// GenerateInvoicesRequest triggers a billing cycle for a due date
type GenerateInvoicesRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// GenerateInvoicesResult summarises a billing cycle run
type GenerateInvoicesResult struct {
	DueDate time.Time `json:"due_date"`
	Created int       `json:"created"`
	Skipped int       `json:"skipped"`
}

// ToRateResponse maps a domain rate row to its API shape
func ToRateResponse(rate *billing.DueRate) RateResponse {
	return RateResponse{
		ID:            rate.ID,
		PaymentType:   string(rate.PaymentType),
		Amount:        rate.Amount.Amount(),
		EffectiveDate: rate.EffectiveDate,
		IsActive:      rate.IsActive,
		CreatedAt:     rate.CreatedAt,
	}
}

// ToPaymentResponse maps a domain payment to its API shape, deriving the
// status as of now
func ToPaymentResponse(payment *billing.Payment, now time.Time) PaymentResponse {
	return PaymentResponse{
		ID:              payment.ID,
		HomeownerID:     payment.HomeownerID,
		LotID:           payment.LotID,
		Amount:          payment.Amount.Amount(),
		PaymentType:     string(payment.PaymentType),
		DueDate:         payment.DueDate,
		PaymentDate:     payment.PaymentDate,
		MonthsCovered:   payment.MonthsCovered,
		Status:          string(payment.StatusAt(now)),
		ReferenceNumber: payment.ReferenceNumber,
		Notes:           payment.Notes,
		CreatedAt:       payment.CreatedAt,
	}
}
