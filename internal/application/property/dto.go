package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// CreateBlockRequest creates a new block
type CreateBlockRequest struct {
	BlockNumber string `json:"block_number" binding:"required,min=1,max=20"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateBlockRequest updates a block's description
type UpdateBlockRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// BlockResponse represents a block in API responses
type BlockResponse struct {
	ID          uuid.UUID `json:"id"`
	BlockNumber string    `json:"block_number"`
	Description string    `json:"description,omitempty"`
	TotalLots   int64     `json:"total_lots"`
	Occupied    int64     `json:"occupied_lots"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLotRequest creates a new lot within a block
type CreateLotRequest struct {
	BlockID   uuid.UUID       `json:"block_id" binding:"required"`
	LotNumber string          `json:"lot_number" binding:"required,min=1,max=20"`
	Area      decimal.Decimal `json:"area" binding:"required"`
}

// AssignLotRequest attaches an owner to a vacant lot
type AssignLotRequest struct {
	OwnerID   uuid.UUID `json:"owner_id" binding:"required"`
	OwnerType string    `json:"owner_type" binding:"required,oneof=lessor lessee"`
}

// ListLotsRequest contains filters for listing lots
type ListLotsRequest struct {
	BlockID  *uuid.UUID `form:"block_id"`
	Occupied *bool      `form:"occupied"`
	Keyword  string     `form:"keyword"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID        uuid.UUID       `json:"id"`
	BlockID   uuid.UUID       `json:"block_id"`
	LotNumber string          `json:"lot_number"`
	Area      decimal.Decimal `json:"area"`
	Status    string          `json:"status"`
	OwnerID   *uuid.UUID      `json:"owner_id,omitempty"`
	OwnerType string          `json:"owner_type,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToBlockResponse maps a domain block to its API shape
func ToBlockResponse(block *property.Block, totalLots, occupied int64) BlockResponse {
	return BlockResponse{
		ID:          block.ID,
		BlockNumber: block.BlockNumber,
		Description: block.Description,
		TotalLots:   totalLots,
		Occupied:    occupied,
		CreatedAt:   block.CreatedAt,
	}
}

// ToLotResponse maps a domain lot to its API shape
func ToLotResponse(lot *property.Lot) LotResponse {
	return LotResponse{
		ID:        lot.ID,
		BlockID:   lot.BlockID,
		LotNumber: lot.LotNumber,
		Area:      lot.Area,
		Status:    string(lot.Status()),
		OwnerID:   lot.OwnerID,
		OwnerType: string(lot.OwnerType),
		CreatedAt: lot.CreatedAt,
	}
}
