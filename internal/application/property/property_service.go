package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PropertyService handles block and lot management
type PropertyService struct {
	blockRepo property.BlockRepository
	lotRepo   property.LotRepository
	userRepo  identity.UserRepository
	logger    *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(blockRepo property.BlockRepository, lotRepo property.LotRepository, userRepo identity.UserRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		blockRepo: blockRepo,
		lotRepo:   lotRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreateBlock creates a new block
func (s *PropertyService) CreateBlock(ctx context.Context, req CreateBlockRequest) (*BlockResponse, error) {
	exists, err := s.blockRepo.ExistsByBlockNumber(ctx, req.BlockNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A block with this number already exists")
	}

	block, err := property.NewBlock(req.BlockNumber, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return nil, err
	}

	s.logger.Info("Block created", zap.String("block_number", req.BlockNumber))

	response := ToBlockResponse(block, 0, 0)
	return &response, nil
}

// UpdateBlock updates a block's description
func (s *PropertyService) UpdateBlock(ctx context.Context, blockID uuid.UUID, req UpdateBlockRequest) (*BlockResponse, error) {
	block, err := s.blockRepo.FindByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, shared.ErrNotFound
	}

	if req.Description != nil {
		block.SetDescription(*req.Description)
	}
	if err := s.blockRepo.Update(ctx, block); err != nil {
		return nil, err
	}

	total, occupied, err := s.lotRepo.CountByBlockID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	response := ToBlockResponse(block, total, occupied)
	return &response, nil
}

// GetBlock retrieves a block with its occupancy counts
func (s *PropertyService) GetBlock(ctx context.Context, blockID uuid.UUID) (*BlockResponse, error) {
	block, err := s.blockRepo.FindByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, shared.ErrNotFound
	}

	total, occupied, err := s.lotRepo.CountByBlockID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	response := ToBlockResponse(block, total, occupied)
	return &response, nil
}

// ListBlocks returns all blocks with occupancy counts
func (s *PropertyService) ListBlocks(ctx context.Context) ([]BlockResponse, error) {
	blocks, err := s.blockRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BlockResponse, len(blocks))
	for i, block := range blocks {
		total, occupied, err := s.lotRepo.CountByBlockID(ctx, block.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = ToBlockResponse(block, total, occupied)
	}
	return responses, nil
}

// DeleteBlock deletes an empty block
func (s *PropertyService) DeleteBlock(ctx context.Context, blockID uuid.UUID) error {
	block, err := s.blockRepo.FindByID(ctx, blockID)
	if err != nil {
		return err
	}
	if block == nil {
		return shared.ErrNotFound
	}
	return s.blockRepo.Delete(ctx, blockID)
}

// CreateLot creates a new vacant lot in a block
func (s *PropertyService) CreateLot(ctx context.Context, req CreateLotRequest) (*LotResponse, error) {
	block, err := s.blockRepo.FindByID(ctx, req.BlockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Block does not exist")
	}

	exists, err := s.lotRepo.ExistsByBlockAndNumber(ctx, req.BlockID, req.LotNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A lot with this number already exists in the block")
	}

	lot, err := property.NewLot(req.BlockID, req.LotNumber, req.Area)
	if err != nil {
		return nil, err
	}
	if err := s.lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("Lot created",
		zap.String("block_number", block.BlockNumber),
		zap.String("lot_number", req.LotNumber))

	response := ToLotResponse(lot)
	return &response, nil
}

// GetLot retrieves a lot by ID
func (s *PropertyService) GetLot(ctx context.Context, lotID uuid.UUID) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, shared.ErrNotFound
	}
	response := ToLotResponse(lot)
	return &response, nil
}

// ListLots returns lots matching the filter
func (s *PropertyService) ListLots(ctx context.Context, req ListLotsRequest) (*shared.Paginated[LotResponse], error) {
	filter := property.NewLotFilter().WithPagination(req.Page, req.PageSize)
	if req.BlockID != nil {
		filter = filter.WithBlockID(*req.BlockID)
	}
	if req.Occupied != nil {
		filter = filter.WithOccupied(*req.Occupied)
	}
	if req.Keyword != "" {
		filter = filter.WithKeyword(req.Keyword)
	}

	lots, total, err := s.lotRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]LotResponse, len(lots))
	for i, lot := range lots {
		items[i] = ToLotResponse(lot)
	}

	result := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &result, nil
}

// ListLotsByOwner returns all lots owned by a user
func (s *PropertyService) ListLotsByOwner(ctx context.Context, ownerID uuid.UUID) ([]LotResponse, error) {
	lots, err := s.lotRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]LotResponse, len(lots))
	for i, lot := range lots {
		responses[i] = ToLotResponse(lot)
	}
	return responses, nil
}

// AssignLot attaches an approved homeowner to a vacant lot (admin, e.g.
// for transfers recorded outside the registration flow)
func (s *PropertyService) AssignLot(ctx context.Context, lotID uuid.UUID, req AssignLotRequest) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, shared.ErrNotFound
	}

	owner, err := s.userRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Owner account does not exist")
	}
	if owner.Role != identity.UserRoleHomeowner || !owner.IsApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Lots can only be assigned to approved homeowners")
	}

	if err := lot.AssignOwner(req.OwnerID, property.OwnerType(req.OwnerType)); err != nil {
		return nil, err
	}
	if err := s.lotRepo.UpdateWithLock(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("Lot assigned",
		zap.String("lot_id", lotID.String()),
		zap.String("owner_id", req.OwnerID.String()))

	response := ToLotResponse(lot)
	return &response, nil
}

// VacateLot releases a lot from its owner (admin, e.g. on move-out)
func (s *PropertyService) VacateLot(ctx context.Context, lotID uuid.UUID) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, shared.ErrNotFound
	}

	if err := lot.Vacate(); err != nil {
		return nil, err
	}
	if err := s.lotRepo.UpdateWithLock(ctx, lot); err != nil {
		return nil, err
	}

	s.logger.Info("Lot vacated", zap.String("lot_id", lotID.String()))

	response := ToLotResponse(lot)
	return &response, nil
}

// DeleteLot deletes a vacant lot
func (s *PropertyService) DeleteLot(ctx context.Context, lotID uuid.UUID) error {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return shared.ErrNotFound
	}
	if lot.IsOccupied() {
		return shared.NewDomainError("INVALID_STATE", "Occupied lots cannot be deleted")
	}
	return s.lotRepo.Delete(ctx, lotID)
}
