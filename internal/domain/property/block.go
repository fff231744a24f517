package property

import (
	"strings"
	"time"

	"github.com/hoa/backend/internal/domain/shared"
)

// Block represents a named grouping of lots in the subdivision
type Block struct {
	shared.BaseAggregateRoot
	BlockNumber string
	Description string
}

// NewBlock creates a new block
func NewBlock(blockNumber, description string) (*Block, error) {
	blockNumber = strings.TrimSpace(blockNumber)
	if blockNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Block number cannot be empty")
	}
	if len(blockNumber) > 50 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Block number cannot exceed 50 characters")
	}

	return &Block{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BlockNumber:       blockNumber,
		Description:       strings.TrimSpace(description),
	}, nil
}

// SetDescription updates the block description
// The block number itself is immutable once lots reference the block
func (b *Block) SetDescription(description string) {
	b.Description = strings.TrimSpace(description)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
