package models

import (
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// BlockModel is the persistence model for the Block aggregate root.
type BlockModel struct {
	AggregateModel
	BlockNumber string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BlockModel) TableName() string {
	return "blocks"
}

// ToDomain converts the persistence model to a domain Block entity.
func (m *BlockModel) ToDomain() *property.Block {
	return &property.Block{
		BaseAggregateRoot: m.baseAggregateRoot(),
		BlockNumber:       m.BlockNumber,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain Block entity.
func (m *BlockModel) FromDomain(b *property.Block) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.BlockNumber = b.BlockNumber
	m.Description = b.Description
}

// BlockModelFromDomain creates a new persistence model from a domain Block.
func BlockModelFromDomain(b *property.Block) *BlockModel {
	m := &BlockModel{}
	m.FromDomain(b)
	return m
}

// LotModel is the persistence model for the Lot aggregate root.
type LotModel struct {
	AggregateModel
	BlockID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_lots_block_number,priority:1"`
	LotNumber string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_lots_block_number,priority:2"`
	Area      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	OwnerID   *uuid.UUID         `gorm:"type:uuid;index"`
	OwnerType property.OwnerType `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot entity.
func (m *LotModel) ToDomain() *property.Lot {
	return &property.Lot{
		BaseAggregateRoot: m.baseAggregateRoot(),
		BlockID:           m.BlockID,
		LotNumber:         m.LotNumber,
		Area:              m.Area,
		OwnerID:           m.OwnerID,
		OwnerType:         m.OwnerType,
	}
}

// FromDomain populates the persistence model from a domain Lot entity.
func (m *LotModel) FromDomain(l *property.Lot) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.BlockID = l.BlockID
	m.LotNumber = l.LotNumber
	m.Area = l.Area
	m.OwnerID = l.OwnerID
	m.OwnerType = l.OwnerType
}

// LotModelFromDomain creates a new persistence model from a domain Lot.
func LotModelFromDomain(l *property.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}
