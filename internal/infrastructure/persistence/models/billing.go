package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate root.
// Only the settlement facts are stored; the read-side status is always
// derived by the classifier.
type PaymentModel struct {
	AggregateModel
	HomeownerID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	LotID           uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_payments_lot_due,priority:1"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentType     billing.PaymentType `gorm:"type:varchar(20);not null;index"`
	DueDate         time.Time           `gorm:"not null;uniqueIndex:idx_payments_lot_due,priority:2;index"`
	PaymentDate     *time.Time          `gorm:"index"`
	MonthsCovered   int                 `gorm:"not null;default:1"`
	ReferenceNumber string              `gorm:"type:varchar(100)"`
	Notes           string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.baseAggregateRoot(),
		HomeownerID:       m.HomeownerID,
		LotID:             m.LotID,
		Amount:            valueobject.NewMoneyPHP(m.Amount),
		PaymentType:       m.PaymentType,
		DueDate:           m.DueDate,
		PaymentDate:       m.PaymentDate,
		MonthsCovered:     m.MonthsCovered,
		ReferenceNumber:   m.ReferenceNumber,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.HomeownerID = p.HomeownerID
	m.LotID = p.LotID
	m.Amount = p.Amount.Amount()
	m.PaymentType = p.PaymentType
	m.DueDate = p.DueDate
	m.PaymentDate = p.PaymentDate
	m.MonthsCovered = p.MonthsCovered
	m.ReferenceNumber = p.ReferenceNumber
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// DueRateModel is the persistence model for the DueRate aggregate root.
type DueRateModel struct {
	AggregateModel
	PaymentType   billing.PaymentType `gorm:"type:varchar(20);not null;index:idx_due_rates_type_effective,priority:1"`
	Amount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	EffectiveDate time.Time           `gorm:"not null;index:idx_due_rates_type_effective,priority:2"`
	IsActive      bool                `gorm:"not null;default:true;index"`
	CreatedBy     uuid.UUID           `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (DueRateModel) TableName() string {
	return "due_rates"
}

// ToDomain converts the persistence model to a domain DueRate entity.
func (m *DueRateModel) ToDomain() *billing.DueRate {
	return &billing.DueRate{
		BaseAggregateRoot: m.baseAggregateRoot(),
		PaymentType:       m.PaymentType,
		Amount:            valueobject.NewMoneyPHP(m.Amount),
		EffectiveDate:     m.EffectiveDate,
		IsActive:          m.IsActive,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain DueRate entity.
func (m *DueRateModel) FromDomain(r *billing.DueRate) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.PaymentType = r.PaymentType
	m.Amount = r.Amount.Amount()
	m.EffectiveDate = r.EffectiveDate
	m.IsActive = r.IsActive
	m.CreatedBy = r.CreatedBy
}

// DueRateModelFromDomain creates a new persistence model from a domain DueRate.
func DueRateModelFromDomain(r *billing.DueRate) *DueRateModel {
	m := &DueRateModel{}
	m.FromDomain(r)
	return m
}
