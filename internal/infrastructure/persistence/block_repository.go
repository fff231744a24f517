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

// GormBlockRepository implements property.BlockRepository using GORM
type GormBlockRepository struct {
	db *gorm.DB
}

// NewGormBlockRepository creates a new GormBlockRepository
func NewGormBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

// Create creates a new block
func (r *GormBlockRepository) Create(ctx context.Context, block *property.Block) error {
	model := models.BlockModelFromDomain(block)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing block
func (r *GormBlockRepository) Update(ctx context.Context, block *property.Block) error {
	model := models.BlockModelFromDomain(block)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a block by ID, refusing while lots still reference it
func (r *GormBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var lotCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("block_id = ?", id).
		Count(&lotCount).Error; err != nil {
		return err
	}
	if lotCount > 0 {
		return shared.NewDomainError("INVALID_STATE", "Block still has lots and cannot be deleted")
	}
	return r.db.WithContext(ctx).Delete(&models.BlockModel{}, "id = ?", id).Error
}

// FindByID finds a block by ID
func (r *GormBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Block, error) {
	var model models.BlockModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBlockNumber finds a block by its number label
func (r *GormBlockRepository) FindByBlockNumber(ctx context.Context, blockNumber string) (*property.Block, error) {
	var model models.BlockModel
	if err := r.db.WithContext(ctx).First(&model, "block_number = ?", blockNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all blocks ordered by block number
func (r *GormBlockRepository) FindAll(ctx context.Context) ([]*property.Block, error) {
	var blockModels []models.BlockModel
	if err := r.db.WithContext(ctx).Order("block_number ASC").Find(&blockModels).Error; err != nil {
		return nil, err
	}
	blocks := make([]*property.Block, len(blockModels))
	for i := range blockModels {
		blocks[i] = blockModels[i].ToDomain()
	}
	return blocks, nil
}

// ExistsByBlockNumber checks if a block number is already in use
func (r *GormBlockRepository) ExistsByBlockNumber(ctx context.Context, blockNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BlockModel{}).
		Where("block_number = ?", blockNumber).
		Count(&count).Error
	return count > 0, err
}

// Ensure GormBlockRepository implements property.BlockRepository
var _ property.BlockRepository = (*GormBlockRepository)(nil)
