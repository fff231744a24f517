package property

import (
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeBlock = "Block"
	AggregateTypeLot   = "Lot"
)

// Property domain event types
const (
	EventTypeLotOccupied = "LotOccupied"
	EventTypeLotVacated  = "LotVacated"
)

// LotOccupiedEvent is published when an owner is assigned to a lot
type LotOccupiedEvent struct {
	shared.BaseDomainEvent
	BlockID   uuid.UUID `json:"block_id"`
	LotNumber string    `json:"lot_number"`
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerType OwnerType `json:"owner_type"`
}

// NewLotOccupiedEvent creates a new LotOccupiedEvent
func NewLotOccupiedEvent(lot *Lot) *LotOccupiedEvent {
	return &LotOccupiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotOccupied, AggregateTypeLot, lot.ID),
		BlockID:         lot.BlockID,
		LotNumber:       lot.LotNumber,
		OwnerID:         *lot.OwnerID,
		OwnerType:       lot.OwnerType,
	}
}

// LotVacatedEvent is published when the owner is removed from a lot
type LotVacatedEvent struct {
	shared.BaseDomainEvent
	BlockID         uuid.UUID `json:"block_id"`
	LotNumber       string    `json:"lot_number"`
	PreviousOwnerID uuid.UUID `json:"previous_owner_id"`
}

// NewLotVacatedEvent creates a new LotVacatedEvent
func NewLotVacatedEvent(lot *Lot, previousOwnerID uuid.UUID) *LotVacatedEvent {
	return &LotVacatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotVacated, AggregateTypeLot, lot.ID),
		BlockID:         lot.BlockID,
		LotNumber:       lot.LotNumber,
		PreviousOwnerID: previousOwnerID,
	}
}
