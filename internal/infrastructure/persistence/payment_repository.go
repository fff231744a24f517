package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateWithLock updates a payment using optimistic locking on the version
// column. Settling a payment goes through this path so a double confirmation
// loses instead of silently overwriting.
func (r *GormPaymentRepository) UpdateWithLock(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The payment has been modified by another user")
	}
	return nil
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHomeownerID returns all payments of a homeowner, newest due date first
func (r *GormPaymentRepository) FindByHomeownerID(ctx context.Context, homeownerID uuid.UUID) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("homeowner_id = ?", homeownerID).
		Order("due_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByLotIDs returns all payments charged against the given lots
func (r *GormPaymentRepository) FindByLotIDs(ctx context.Context, lotIDs []uuid.UUID) ([]*billing.Payment, error) {
	if len(lotIDs) == 0 {
		return []*billing.Payment{}, nil
	}
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("lot_id IN ?", lotIDs).
		Order("due_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll returns payments matching the filter with pagination
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter billing.PaymentFilter) ([]*billing.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})

	if filter.HomeownerID != nil {
		query = query.Where("homeowner_id = ?", *filter.HomeownerID)
	}
	if filter.LotID != nil {
		query = query.Where("lot_id = ?", *filter.LotID)
	}
	if filter.Paid != nil {
		if *filter.Paid {
			query = query.Where("payment_date IS NOT NULL")
		} else {
			query = query.Where("payment_date IS NULL")
		}
	}
	if filter.PaymentType != nil {
		query = query.Where("payment_type = ?", *filter.PaymentType)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, PaymentSortFields, "due_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var paymentModels []models.PaymentModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainPayments(paymentModels), total, nil
}

// FindUnpaidDueBetween returns unpaid payments with due dates in [from, to]
func (r *GormPaymentRepository) FindUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("payment_date IS NULL AND due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// ExistsForLotAndDueDate checks whether an invoice already covers a lot and due date
func (r *GormPaymentRepository) ExistsForLotAndDueDate(ctx context.Context, lotID uuid.UUID, dueDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("lot_id = ? AND due_date = ?", lotID, dueDate).
		Count(&count).Error
	return count > 0, err
}

// SumPaidAmount totals settled payments with payment dates in [from, to].
// An empty window sums to zero rather than erroring.
func (r *GormPaymentRepository) SumPaidAmount(ctx context.Context, from, to time.Time) (valueobject.Money, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("payment_date IS NOT NULL AND payment_date >= ? AND payment_date <= ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return valueobject.ZeroPHP(), err
	}
	return valueobject.NewMoneyPHP(total), nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []*billing.Payment {
	payments := make([]*billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments
}

// Ensure GormPaymentRepository implements billing.PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
