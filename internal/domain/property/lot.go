package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OwnerType classifies the occupant of a lot
type OwnerType string

const (
	OwnerTypeLessor OwnerType = "lessor"
	OwnerTypeLessee OwnerType = "lessee"
)

// IsValid checks whether the owner type is a known value
func (t OwnerType) IsValid() bool {
	switch t {
	case OwnerTypeLessor, OwnerTypeLessee:
		return true
	}
	return false
}

// LotStatus is derived from owner presence, never stored
type LotStatus string

const (
	LotStatusOccupied LotStatus = "occupied"
	LotStatusVacant   LotStatus = "vacant"
)

// ErrLotAlreadyOccupied is returned when assigning an owner to an occupied lot
var ErrLotAlreadyOccupied = shared.NewDomainError("LOT_ALREADY_OCCUPIED", "Lot already has an owner")

// Lot represents an individual parcel within a block
type Lot struct {
	shared.BaseAggregateRoot
	BlockID   uuid.UUID
	LotNumber string
	Area      decimal.Decimal // square meters
	OwnerID   *uuid.UUID
	OwnerType OwnerType
}

// NewLot creates a vacant lot in the given block
func NewLot(blockID uuid.UUID, lotNumber string, area decimal.Decimal) (*Lot, error) {
	if blockID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Block ID cannot be empty")
	}
	lotNumber = strings.TrimSpace(lotNumber)
	if lotNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot number cannot be empty")
	}
	if len(lotNumber) > 50 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot number cannot exceed 50 characters")
	}
	if area.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot area cannot be negative")
	}

	return &Lot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BlockID:           blockID,
		LotNumber:         lotNumber,
		Area:              area,
	}, nil
}

// Status derives the occupancy status from owner presence
func (l *Lot) Status() LotStatus {
	if l.OwnerID != nil {
		return LotStatusOccupied
	}
	return LotStatusVacant
}

// IsOccupied returns true if the lot has an owner
func (l *Lot) IsOccupied() bool {
	return l.OwnerID != nil
}

// AssignOwner attaches a homeowner to the lot
// Fails if the lot is already occupied
func (l *Lot) AssignOwner(ownerID uuid.UUID, ownerType OwnerType) error {
	if ownerID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Owner ID cannot be empty")
	}
	if !ownerType.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Owner type must be lessor or lessee")
	}
	if l.IsOccupied() {
		return ErrLotAlreadyOccupied
	}

	l.OwnerID = &ownerID
	l.OwnerType = ownerType
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLotOccupiedEvent(l))

	return nil
}

// Vacate removes the current owner from the lot
func (l *Lot) Vacate() error {
	if !l.IsOccupied() {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Lot is already vacant")
	}

	previousOwner := *l.OwnerID
	l.OwnerID = nil
	l.OwnerType = ""
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLotVacatedEvent(l, previousOwner))

	return nil
}

// Label returns the display label used on invoices, e.g. "Block 1, Lot 5"
func (l *Lot) Label(blockNumber string) string {
	return "Block " + blockNumber + ", Lot " + l.LotNumber
}
