package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create creates a new payment
	Create(ctx context.Context, payment *Payment) error

	// Update updates an existing payment
	Update(ctx context.Context, payment *Payment) error

	// UpdateWithLock updates a payment using optimistic locking
	UpdateWithLock(ctx context.Context, payment *Payment) error

	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByHomeownerID returns all payments of a homeowner, newest due date first
	FindByHomeownerID(ctx context.Context, homeownerID uuid.UUID) ([]*Payment, error)

	// FindByLotIDs returns all payments charged against the given lots
	FindByLotIDs(ctx context.Context, lotIDs []uuid.UUID) ([]*Payment, error)

	// FindAll returns payments matching the filter with pagination
	FindAll(ctx context.Context, filter PaymentFilter) ([]*Payment, int64, error)

	// FindUnpaidDueBetween returns unpaid payments with due dates in [from, to]
	FindUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*Payment, error)

	// ExistsForLotAndDueDate checks whether an invoice already covers a lot and due date
	ExistsForLotAndDueDate(ctx context.Context, lotID uuid.UUID, dueDate time.Time) (bool, error)

	// SumPaidAmount totals settled payments with payment dates in [from, to]
	SumPaidAmount(ctx context.Context, from, to time.Time) (valueobject.Money, error)
}

// DueRateRepository defines the interface for rate schedule persistence
type DueRateRepository interface {
	// Create appends a new rate row
	Create(ctx context.Context, rate *DueRate) error

	// Update updates a rate row (activation flag only; rows are append-only)
	Update(ctx context.Context, rate *DueRate) error

	// FindByID finds a rate row by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DueRate, error)

	// FindAll returns the full rate schedule, newest effective date first
	FindAll(ctx context.Context) ([]*DueRate, error)

	// FindByType returns all rate rows for a payment type
	FindByType(ctx context.Context, paymentType PaymentType) ([]*DueRate, error)

	// FindEffective returns the authoritative rate for (paymentType, target)
	// following the resolution rules of ResolveRate
	FindEffective(ctx context.Context, paymentType PaymentType, target time.Time) (*DueRate, error)
}

// PaymentFilter contains filter options for querying payments
type PaymentFilter struct {
	// Filter by homeowner
	HomeownerID *uuid.UUID

	// Filter by lot
	LotID *uuid.UUID

	// Filter by settlement; nil means both
	Paid *bool

	// Filter by payment type
	PaymentType *PaymentType

	// Due date range
	DueFrom *time.Time
	DueTo   *time.Time

	// Sorting; empty values fall back to due date, newest first
	OrderBy  string
	OrderDir string

	// Pagination
	Page     int
	PageSize int
}

// NewPaymentFilter creates a new PaymentFilter with default values
func NewPaymentFilter() PaymentFilter {
	return PaymentFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithHomeownerID sets the homeowner filter
func (f PaymentFilter) WithHomeownerID(id uuid.UUID) PaymentFilter {
	f.HomeownerID = &id
	return f
}

// WithLotID sets the lot filter
func (f PaymentFilter) WithLotID(id uuid.UUID) PaymentFilter {
	f.LotID = &id
	return f
}

// WithPaid sets the settlement filter
func (f PaymentFilter) WithPaid(paid bool) PaymentFilter {
	f.Paid = &paid
	return f
}

// WithPaymentType sets the payment type filter
func (f PaymentFilter) WithPaymentType(t PaymentType) PaymentFilter {
	f.PaymentType = &t
	return f
}

// WithDueRange sets the due date range filter
func (f PaymentFilter) WithDueRange(from, to time.Time) PaymentFilter {
	f.DueFrom = &from
	f.DueTo = &to
	return f
}

// WithOrder sets the sort column and direction
func (f PaymentFilter) WithOrder(orderBy, orderDir string) PaymentFilter {
	f.OrderBy = orderBy
	f.OrderDir = orderDir
	return f
}

// WithPagination sets pagination parameters
func (f PaymentFilter) WithPagination(page, pageSize int) PaymentFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f PaymentFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f PaymentFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
