package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDueRateRepository implements billing.DueRateRepository using GORM
type GormDueRateRepository struct {
	db *gorm.DB
}

// NewGormDueRateRepository creates a new GormDueRateRepository
func NewGormDueRateRepository(db *gorm.DB) *GormDueRateRepository {
	return &GormDueRateRepository{db: db}
}

// Create appends a new rate row
func (r *GormDueRateRepository) Create(ctx context.Context, rate *billing.DueRate) error {
	model := models.DueRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates a rate row
func (r *GormDueRateRepository) Update(ctx context.Context, rate *billing.DueRate) error {
	model := models.DueRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a rate row by ID
func (r *GormDueRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.DueRate, error) {
	var model models.DueRateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the full rate schedule, newest effective date first
func (r *GormDueRateRepository) FindAll(ctx context.Context) ([]*billing.DueRate, error) {
	var rateModels []models.DueRateModel
	if err := r.db.WithContext(ctx).
		Order("effective_date DESC, created_at DESC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}
	return toDomainDueRates(rateModels), nil
}

// FindByType returns all rate rows for a payment type, newest effective date first
func (r *GormDueRateRepository) FindByType(ctx context.Context, paymentType billing.PaymentType) ([]*billing.DueRate, error) {
	var rateModels []models.DueRateModel
	if err := r.db.WithContext(ctx).
		Where("payment_type = ?", paymentType).
		Order("effective_date DESC, created_at DESC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}
	return toDomainDueRates(rateModels), nil
}

// FindEffective returns the authoritative rate for a payment type on the
// target date. Candidates are loaded newest first and the in-memory resolver
// applies the selection rules, so the SQL ordering and the resolver cannot
// disagree on ties.
func (r *GormDueRateRepository) FindEffective(ctx context.Context, paymentType billing.PaymentType, target time.Time) (*billing.DueRate, error) {
	rates, err := r.FindByType(ctx, paymentType)
	if err != nil {
		return nil, err
	}
	return billing.ResolveRate(rates, paymentType, target)
}

func toDomainDueRates(rateModels []models.DueRateModel) []*billing.DueRate {
	rates := make([]*billing.DueRate, len(rateModels))
	for i := range rateModels {
		rates[i] = rateModels[i].ToDomain()
	}
	return rates
}

// Ensure GormDueRateRepository implements billing.DueRateRepository
var _ billing.DueRateRepository = (*GormDueRateRepository)(nil)
