package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLot(t *testing.T) *Lot {
	t.Helper()
	lot, err := NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
	require.NoError(t, err)
	return lot
}

func TestNewLot(t *testing.T) {
	tests := []struct {
		name      string
		blockID   uuid.UUID
		lotNumber string
		area      decimal.Decimal
		wantErr   bool
	}{
		{"valid", uuid.New(), "A-02", decimal.NewFromInt(120), false},
		{"zero area allowed", uuid.New(), "A-03", decimal.Zero, false},
		{"nil block", uuid.Nil, "A-02", decimal.NewFromInt(120), true},
		{"empty lot number", uuid.New(), "  ", decimal.NewFromInt(120), true},
		{"negative area", uuid.New(), "A-02", decimal.NewFromInt(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot, err := NewLot(tt.blockID, tt.lotNumber, tt.area)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, LotStatusVacant, lot.Status())
			assert.Nil(t, lot.OwnerID)
		})
	}
}

func TestLot_AssignOwner(t *testing.T) {
	lot := createTestLot(t)
	ownerID := uuid.New()

	require.NoError(t, lot.AssignOwner(ownerID, OwnerTypeLessor))

	assert.Equal(t, LotStatusOccupied, lot.Status())
	assert.Equal(t, ownerID, *lot.OwnerID)
	assert.Equal(t, OwnerTypeLessor, lot.OwnerType)
	assert.NotEmpty(t, lot.GetDomainEvents())
}

func TestLot_AssignOwner_AlreadyOccupied(t *testing.T) {
	lot := createTestLot(t)
	first := uuid.New()
	require.NoError(t, lot.AssignOwner(first, OwnerTypeLessor))

	err := lot.AssignOwner(uuid.New(), OwnerTypeLessee)
	assert.ErrorIs(t, err, ErrLotAlreadyOccupied)

	// No partial mutation
	assert.Equal(t, first, *lot.OwnerID)
	assert.Equal(t, OwnerTypeLessor, lot.OwnerType)
}

func TestLot_AssignOwner_Validation(t *testing.T) {
	lot := createTestLot(t)

	assert.Error(t, lot.AssignOwner(uuid.Nil, OwnerTypeLessor))
	assert.Error(t, lot.AssignOwner(uuid.New(), OwnerType("tenant")))
	assert.Equal(t, LotStatusVacant, lot.Status())
}

func TestLot_Vacate(t *testing.T) {
	lot := createTestLot(t)

	err := lot.Vacate()
	assert.Error(t, err)

	require.NoError(t, lot.AssignOwner(uuid.New(), OwnerTypeLessee))
	require.NoError(t, lot.Vacate())
	assert.Equal(t, LotStatusVacant, lot.Status())
	assert.Nil(t, lot.OwnerID)
	assert.Empty(t, string(lot.OwnerType))
}

func TestLot_Label(t *testing.T) {
	lot := createTestLot(t)
	assert.Equal(t, "Block 1, Lot A-02", lot.Label("1"))
}

func TestNewBlock(t *testing.T) {
	block, err := NewBlock(" 1 ", "Phase 1, east side")
	require.NoError(t, err)
	assert.Equal(t, "1", block.BlockNumber)
	assert.Equal(t, "Phase 1, east side", block.Description)

	_, err = NewBlock("", "")
	assert.Error(t, err)
}

func TestBlock_SetDescription(t *testing.T) {
	block, err := NewBlock("2", "")
	require.NoError(t, err)
	v := block.GetVersion()

	block.SetDescription("Near the clubhouse")
	assert.Equal(t, "Near the clubhouse", block.Description)
	assert.Equal(t, v+1, block.GetVersion())
}
