package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBlockRepository is a mock implementation of property.BlockRepository
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(ctx context.Context, block *property.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockBlockRepository) Update(ctx context.Context, block *property.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Block, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Block), args.Error(1)
}

func (m *MockBlockRepository) FindByBlockNumber(ctx context.Context, blockNumber string) (*property.Block, error) {
	args := m.Called(ctx, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Block), args.Error(1)
}

func (m *MockBlockRepository) FindAll(ctx context.Context) ([]*property.Block, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Block), args.Error(1)
}

func (m *MockBlockRepository) ExistsByBlockNumber(ctx context.Context, blockNumber string) (bool, error) {
	args := m.Called(ctx, blockNumber)
	return args.Bool(0), args.Error(1)
}

// MockLotRepository is a mock implementation of property.LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) Create(ctx context.Context, lot *property.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) Update(ctx context.Context, lot *property.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) UpdateWithLock(ctx context.Context, lot *property.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByBlockID(ctx context.Context, blockID uuid.UUID) ([]*property.Lot, error) {
	args := m.Called(ctx, blockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*property.Lot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAll(ctx context.Context, filter property.LotFilter) ([]*property.Lot, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*property.Lot), args.Get(1).(int64), args.Error(2)
}

func (m *MockLotRepository) FindOccupied(ctx context.Context) ([]*property.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Lot), args.Error(1)
}

func (m *MockLotRepository) ExistsByBlockAndNumber(ctx context.Context, blockID uuid.UUID, lotNumber string) (bool, error) {
	args := m.Called(ctx, blockID, lotNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotRepository) CountByBlockID(ctx context.Context, blockID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, blockID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestPropertyService() (*PropertyService, *MockBlockRepository, *MockLotRepository, *MockUserRepository) {
	blockRepo := new(MockBlockRepository)
	lotRepo := new(MockLotRepository)
	userRepo := new(MockUserRepository)
	return NewPropertyService(blockRepo, lotRepo, userRepo, zap.NewNop()), blockRepo, lotRepo, userRepo
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestPropertyService_CreateBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a block", func(t *testing.T) {
		svc, blockRepo, _, _ := newTestPropertyService()
		blockRepo.On("ExistsByBlockNumber", ctx, "7").Return(false, nil)
		blockRepo.On("Create", ctx, mock.AnythingOfType("*property.Block")).Return(nil)

		result, err := svc.CreateBlock(ctx, CreateBlockRequest{BlockNumber: "7", Description: "Phase 2"})
		require.NoError(t, err)
		assert.Equal(t, "7", result.BlockNumber)
		assert.Zero(t, result.TotalLots)
		blockRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate block number", func(t *testing.T) {
		svc, blockRepo, _, _ := newTestPropertyService()
		blockRepo.On("ExistsByBlockNumber", ctx, "7").Return(true, nil)

		_, err := svc.CreateBlock(ctx, CreateBlockRequest{BlockNumber: "7"})
		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})
}

func TestPropertyService_CreateLot(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a lot in an existing block", func(t *testing.T) {
		svc, blockRepo, lotRepo, _ := newTestPropertyService()

		block, err := property.NewBlock("1", "")
		require.NoError(t, err)

		blockRepo.On("FindByID", ctx, block.ID).Return(block, nil)
		lotRepo.On("ExistsByBlockAndNumber", ctx, block.ID, "A-02").Return(false, nil)
		lotRepo.On("Create", ctx, mock.AnythingOfType("*property.Lot")).Return(nil)

		result, err := svc.CreateLot(ctx, CreateLotRequest{
			BlockID:   block.ID,
			LotNumber: "A-02",
			Area:      decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "A-02", result.LotNumber)
		assert.Equal(t, string(property.LotStatusVacant), result.Status)
		lotRepo.AssertExpectations(t)
	})

	t.Run("rejects a lot in a missing block", func(t *testing.T) {
		svc, blockRepo, _, _ := newTestPropertyService()
		blockID := uuid.New()
		blockRepo.On("FindByID", ctx, blockID).Return(nil, nil)

		_, err := svc.CreateLot(ctx, CreateLotRequest{BlockID: blockID, LotNumber: "A-02", Area: decimal.NewFromInt(120)})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("rejects a duplicate lot number within the block", func(t *testing.T) {
		svc, blockRepo, lotRepo, _ := newTestPropertyService()

		block, err := property.NewBlock("1", "")
		require.NoError(t, err)

		blockRepo.On("FindByID", ctx, block.ID).Return(block, nil)
		lotRepo.On("ExistsByBlockAndNumber", ctx, block.ID, "A-02").Return(true, nil)

		_, err = svc.CreateLot(ctx, CreateLotRequest{BlockID: block.ID, LotNumber: "A-02", Area: decimal.NewFromInt(120)})
		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})
}

func TestPropertyService_AssignLot(t *testing.T) {
	ctx := context.Background()

	approvedHomeowner := func(t *testing.T) *identity.User {
		t.Helper()
		owner, err := identity.NewHomeowner("resident@example.com", "Resident One", "Sup3rSecret!")
		require.NoError(t, err)
		require.NoError(t, owner.Approve())
		return owner
	}

	t.Run("assigns an approved homeowner to a vacant lot", func(t *testing.T) {
		svc, _, lotRepo, userRepo := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		owner := approvedHomeowner(t)

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		lotRepo.On("UpdateWithLock", ctx, lot).Return(nil)

		result, err := svc.AssignLot(ctx, lot.ID, AssignLotRequest{OwnerID: owner.ID, OwnerType: "lessor"})
		require.NoError(t, err)
		assert.Equal(t, string(property.LotStatusOccupied), result.Status)
		require.NotNil(t, result.OwnerID)
		assert.Equal(t, owner.ID, *result.OwnerID)
		lotRepo.AssertExpectations(t)
	})

	t.Run("rejects an occupied lot", func(t *testing.T) {
		svc, _, lotRepo, userRepo := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		require.NoError(t, lot.AssignOwner(uuid.New(), property.OwnerTypeLessor))
		owner := approvedHomeowner(t)

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		_, err = svc.AssignLot(ctx, lot.ID, AssignLotRequest{OwnerID: owner.ID, OwnerType: "lessee"})
		assertDomainErrorCode(t, err, "LOT_ALREADY_OCCUPIED")
	})

	t.Run("rejects an unapproved owner", func(t *testing.T) {
		svc, _, lotRepo, userRepo := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		owner, err := identity.NewHomeowner("pending@example.com", "Pending Resident", "Sup3rSecret!")
		require.NoError(t, err)

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)

		_, err = svc.AssignLot(ctx, lot.ID, AssignLotRequest{OwnerID: owner.ID, OwnerType: "lessor"})
		assertDomainErrorCode(t, err, "INVALID_STATE")
	})

	t.Run("rejects a missing owner account", func(t *testing.T) {
		svc, _, lotRepo, userRepo := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		ownerID := uuid.New()

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		userRepo.On("FindByID", ctx, ownerID).Return(nil, nil)

		_, err = svc.AssignLot(ctx, lot.ID, AssignLotRequest{OwnerID: ownerID, OwnerType: "lessor"})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("rejects a missing lot", func(t *testing.T) {
		svc, _, lotRepo, _ := newTestPropertyService()
		lotID := uuid.New()
		lotRepo.On("FindByID", ctx, lotID).Return(nil, nil)

		_, err := svc.AssignLot(ctx, lotID, AssignLotRequest{OwnerID: uuid.New(), OwnerType: "lessor"})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPropertyService_VacateLot(t *testing.T) {
	ctx := context.Background()

	t.Run("releases an occupied lot", func(t *testing.T) {
		svc, _, lotRepo, _ := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		require.NoError(t, lot.AssignOwner(uuid.New(), property.OwnerTypeLessor))

		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		lotRepo.On("UpdateWithLock", ctx, lot).Return(nil)

		result, err := svc.VacateLot(ctx, lot.ID)
		require.NoError(t, err)
		assert.Equal(t, string(property.LotStatusVacant), result.Status)
		assert.Nil(t, result.OwnerID)
	})

	t.Run("rejects vacating an already vacant lot", func(t *testing.T) {
		svc, _, lotRepo, _ := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)

		_, err = svc.VacateLot(ctx, lot.ID)
		assertDomainErrorCode(t, err, "INVALID_STATE_TRANSITION")
	})
}

func TestPropertyService_DeleteLot(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to delete an occupied lot", func(t *testing.T) {
		svc, _, lotRepo, _ := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		require.NoError(t, lot.AssignOwner(uuid.New(), property.OwnerTypeLessee))
		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)

		err = svc.DeleteLot(ctx, lot.ID)
		assertDomainErrorCode(t, err, "INVALID_STATE")
	})

	t.Run("deletes a vacant lot", func(t *testing.T) {
		svc, _, lotRepo, _ := newTestPropertyService()

		lot, err := property.NewLot(uuid.New(), "A-02", decimal.NewFromInt(120))
		require.NoError(t, err)
		lotRepo.On("FindByID", ctx, lot.ID).Return(lot, nil)
		lotRepo.On("Delete", ctx, lot.ID).Return(nil)

		require.NoError(t, svc.DeleteLot(ctx, lot.ID))
		lotRepo.AssertExpectations(t)
	})
}
