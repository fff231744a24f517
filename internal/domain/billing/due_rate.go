package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
)

// PaymentType is the billing cadence of dues
type PaymentType string

const (
	PaymentTypeMonthly   PaymentType = "monthly"
	PaymentTypeQuarterly PaymentType = "quarterly"
	PaymentTypeAnnually  PaymentType = "annually"
)

// IsValid checks whether the payment type is a known value
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeMonthly, PaymentTypeQuarterly, PaymentTypeAnnually:
		return true
	}
	return false
}

// MonthsCovered returns how many months one invoice of this cadence covers
func (t PaymentType) MonthsCovered() int {
	switch t {
	case PaymentTypeQuarterly:
		return 3
	case PaymentTypeAnnually:
		return 12
	default:
		return 1
	}
}

// DueRate is one row of the dues rate schedule
// Rows are append-only: a rate change is a new row with a later effective
// date, never a mutation, so historical rates stay reconstructible.
// Each cadence carries its own rows; quarterly and annual amounts are not
// derived from the monthly rate.
type DueRate struct {
	shared.BaseAggregateRoot
	PaymentType   PaymentType
	Amount        valueobject.Money
	EffectiveDate time.Time
	IsActive      bool
	CreatedBy     uuid.UUID
}

// NewDueRate creates an active rate row
func NewDueRate(paymentType PaymentType, amount valueobject.Money, effectiveDate time.Time, createdBy uuid.UUID) (*DueRate, error) {
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment type must be monthly, quarterly, or annually")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate amount must be positive")
	}
	if effectiveDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Effective date cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Creator cannot be empty")
	}

	rate := &DueRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentType:       paymentType,
		Amount:            amount,
		EffectiveDate:     truncateToDay(effectiveDate),
		IsActive:          true,
		CreatedBy:         createdBy,
	}

	rate.AddDomainEvent(NewDueRateCreatedEvent(rate))

	return rate, nil
}

// Deactivate retires the rate row from resolution without deleting it
func (r *DueRate) Deactivate() error {
	if !r.IsActive {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Rate is already inactive")
	}

	r.IsActive = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewDueRateDeactivatedEvent(r))

	return nil
}

// AppliesOn returns true if the rate can serve the target date
func (r *DueRate) AppliesOn(target time.Time) bool {
	return r.IsActive && !r.EffectiveDate.After(target)
}
