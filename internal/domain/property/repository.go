package property

import (
	"context"

	"github.com/google/uuid"
)

// BlockRepository defines the interface for block persistence
type BlockRepository interface {
	// Create creates a new block
	Create(ctx context.Context, block *Block) error

	// Update updates an existing block
	Update(ctx context.Context, block *Block) error

	// Delete deletes a block by ID
	// Implementations must refuse deletion while lots reference the block
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a block by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Block, error)

	// FindByBlockNumber finds a block by its number label
	FindByBlockNumber(ctx context.Context, blockNumber string) (*Block, error)

	// FindAll returns all blocks
	FindAll(ctx context.Context) ([]*Block, error)

	// ExistsByBlockNumber checks if a block number is already in use
	ExistsByBlockNumber(ctx context.Context, blockNumber string) (bool, error)
}

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	// Create creates a new lot
	Create(ctx context.Context, lot *Lot) error

	// Update updates an existing lot
	Update(ctx context.Context, lot *Lot) error

	// UpdateWithLock updates a lot using optimistic locking on the version column
	UpdateWithLock(ctx context.Context, lot *Lot) error

	// Delete deletes a lot by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a lot by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByBlockID returns all lots in a block
	FindByBlockID(ctx context.Context, blockID uuid.UUID) ([]*Lot, error)

	// FindByOwnerID returns all lots owned by a user
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Lot, error)

	// FindAll returns lots matching the filter with pagination
	FindAll(ctx context.Context, filter LotFilter) ([]*Lot, int64, error)

	// FindOccupied returns all occupied lots
	FindOccupied(ctx context.Context) ([]*Lot, error)

	// ExistsByBlockAndNumber checks if a lot number exists within a block
	ExistsByBlockAndNumber(ctx context.Context, blockID uuid.UUID, lotNumber string) (bool, error)

	// CountByBlockID returns total and occupied lot counts for a block
	CountByBlockID(ctx context.Context, blockID uuid.UUID) (total int64, occupied int64, err error)
}

// LotFilter contains filter options for querying lots
type LotFilter struct {
	// Filter by block
	BlockID *uuid.UUID

	// Filter by occupancy; nil means both
	Occupied *bool

	// Search keyword for lot number
	Keyword string

	// Pagination
	Page     int
	PageSize int
}

// NewLotFilter creates a new LotFilter with default values
func NewLotFilter() LotFilter {
	return LotFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithBlockID sets the block filter
func (f LotFilter) WithBlockID(blockID uuid.UUID) LotFilter {
	f.BlockID = &blockID
	return f
}

// WithOccupied sets the occupancy filter
func (f LotFilter) WithOccupied(occupied bool) LotFilter {
	f.Occupied = &occupied
	return f
}

// WithKeyword sets the lot number search keyword
func (f LotFilter) WithKeyword(keyword string) LotFilter {
	f.Keyword = keyword
	return f
}

// WithPagination sets pagination parameters
func (f LotFilter) WithPagination(page, pageSize int) LotFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f LotFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f LotFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
