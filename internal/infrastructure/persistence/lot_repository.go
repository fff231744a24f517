package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLotRepository implements property.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// Create creates a new lot
func (r *GormLotRepository) Create(ctx context.Context, lot *property.Lot) error {
	model := models.LotModelFromDomain(lot)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing lot
func (r *GormLotRepository) Update(ctx context.Context, lot *property.Lot) error {
	model := models.LotModelFromDomain(lot)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateWithLock updates a lot using optimistic locking on the version column
// The domain aggregate increments its version on every mutation, so the row
// must still carry the previous version for the update to apply
func (r *GormLotRepository) UpdateWithLock(ctx context.Context, lot *property.Lot) error {
	model := models.LotModelFromDomain(lot)
	result := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("id = ? AND version = ?", lot.ID, lot.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The lot has been modified by another user")
	}
	return nil
}

// Delete deletes a lot by ID
func (r *GormLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LotModel{}, "id = ?", id).Error
}

// FindByID finds a lot by ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBlockID returns all lots in a block ordered by lot number
func (r *GormLotRepository) FindByBlockID(ctx context.Context, blockID uuid.UUID) ([]*property.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("lot_number ASC").
		Find(&lotModels).Error; err != nil {
		return nil, err
	}
	return toDomainLots(lotModels), nil
}

// FindByOwnerID returns all lots owned by a user
func (r *GormLotRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*property.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("lot_number ASC").
		Find(&lotModels).Error; err != nil {
		return nil, err
	}
	return toDomainLots(lotModels), nil
}

// FindAll returns lots matching the filter with pagination
func (r *GormLotRepository) FindAll(ctx context.Context, filter property.LotFilter) ([]*property.Lot, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LotModel{})

	if filter.BlockID != nil {
		query = query.Where("block_id = ?", *filter.BlockID)
	}
	if filter.Occupied != nil {
		if *filter.Occupied {
			query = query.Where("owner_id IS NOT NULL")
		} else {
			query = query.Where("owner_id IS NULL")
		}
	}
	if filter.Keyword != "" {
		query = query.Where("lot_number LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lotModels []models.LotModel
	if err := query.
		Order("lot_number ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&lotModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainLots(lotModels), total, nil
}

// FindOccupied returns all occupied lots
func (r *GormLotRepository) FindOccupied(ctx context.Context) ([]*property.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("owner_id IS NOT NULL").
		Find(&lotModels).Error; err != nil {
		return nil, err
	}
	return toDomainLots(lotModels), nil
}

// ExistsByBlockAndNumber checks if a lot number exists within a block
func (r *GormLotRepository) ExistsByBlockAndNumber(ctx context.Context, blockID uuid.UUID, lotNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("block_id = ? AND lot_number = ?", blockID, lotNumber).
		Count(&count).Error
	return count > 0, err
}

// CountByBlockID returns total and occupied lot counts for a block
func (r *GormLotRepository) CountByBlockID(ctx context.Context, blockID uuid.UUID) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("block_id = ?", blockID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var occupied int64
	if err := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("block_id = ? AND owner_id IS NOT NULL", blockID).
		Count(&occupied).Error; err != nil {
		return 0, 0, err
	}

	return total, occupied, nil
}

func toDomainLots(lotModels []models.LotModel) []*property.Lot {
	lots := make([]*property.Lot, len(lotModels))
	for i := range lotModels {
		lots[i] = lotModels[i].ToDomain()
	}
	return lots
}

// Ensure GormLotRepository implements property.LotRepository
var _ property.LotRepository = (*GormLotRepository)(nil)
